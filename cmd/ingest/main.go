// Command ingest runs one ingestion pass from the command line and exits.
// Intended for cron-style scheduling next to the long-running server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/ingest"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/internal/sources/indeed"
	"jobhound-ingest/internal/sources/usajobs"
	"jobhound-ingest/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	query := flag.String("query", "", "override the configured search queries")
	location := flag.String("location", "", "override the configured search location")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()

	var store storage.Store
	if cfg.Storage.Backend == "redis" {
		redisStore, err := storage.NewRedisStore(cfg)
		if err != nil {
			logger.Error("Failed to initialize redis storage", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		// An in-memory store makes a one-shot run a dry run.
		logger.Warn("Using in-memory storage; results will not persist past this run")
		store = storage.NewMemoryStore()
	}

	client := sources.NewFetchClient(cfg)
	coordinator := ingest.NewCoordinator(cfg, store,
		indeed.New(cfg, client),
		usajobs.New(cfg, client),
	)

	queries := buildQueries(cfg, *query, *location)
	counts, err := coordinator.Run(context.Background(), queries)
	if err != nil {
		logger.Error("Ingestion run failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	fmt.Printf("jobs created: %d, companies created: %d, jobs skipped: %d\n",
		counts.JobsCreated, counts.CompaniesCreated, counts.JobsSkipped)
}

func buildQueries(cfg *config.Config, query, location string) []sources.Query {
	if location == "" {
		location = cfg.Ingest.Location
	}

	if query != "" {
		return []sources.Query{{Keyword: query, Location: location}}
	}

	queries := make([]sources.Query, 0, len(cfg.Ingest.Queries))
	for _, keyword := range cfg.Ingest.Queries {
		queries = append(queries, sources.Query{Keyword: keyword, Location: location})
	}
	return queries
}
