package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/api/routes"
	"jobhound-ingest/internal/background"
	"jobhound-ingest/internal/chat"
	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/extractor"
	"jobhound-ingest/internal/ingest"
	"jobhound-ingest/internal/llm/providers"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/internal/sources/indeed"
	"jobhound-ingest/internal/sources/usajobs"
	"jobhound-ingest/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting JobHound ingestion service")

	// Persistence backend
	store, cleanup, err := buildStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer cleanup()

	// LLM gateway and extraction pipeline
	gateway := providers.NewGateway(cfg)
	ext := extractor.New(cfg, gateway)

	// Source adapters and the ingestion coordinator
	client := sources.NewFetchClient(cfg)
	coordinator := ingest.NewCoordinator(cfg, store,
		indeed.New(cfg, client),
		usajobs.New(cfg, client),
	)

	// Career advisor
	history, err := buildHistory(cfg)
	if err != nil {
		logger.Error("Failed to initialize chat history", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	advisor := chat.NewAdvisor(cfg, gateway, ext, history)

	// Background task manager
	taskManager := background.NewManager(cfg)
	if err := taskManager.Start(context.Background()); err != nil {
		logger.Error("Failed to start task manager", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, gateway, ext, coordinator, advisor, taskManager)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{"error": err.Error()})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}

// buildStore selects the persistence backend from configuration.
func buildStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		store, err := storage.NewRedisStore(cfg)
		if err != nil {
			return nil, nil, err
		}

		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			store.Close()
			return nil, nil, err
		}

		return store, func() { store.Close() }, nil
	default:
		return storage.NewMemoryStore(), func() {}, nil
	}
}

// buildHistory selects the chat transcript backend; it follows the storage
// backend so one redis deployment serves both.
func buildHistory(cfg *config.Config) (chat.History, error) {
	if cfg.Storage.Backend == "redis" {
		return chat.NewRedisHistory(cfg)
	}
	return chat.NewMemoryHistory(), nil
}
