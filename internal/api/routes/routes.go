package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobhound-ingest/internal/api/handlers"
	"jobhound-ingest/internal/api/middleware"
	"jobhound-ingest/internal/background"
	"jobhound-ingest/internal/chat"
	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/extractor"
	"jobhound-ingest/internal/ingest"
	"jobhound-ingest/internal/llm"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	gateway *llm.Gateway,
	ext *extractor.Extractor,
	coordinator *ingest.Coordinator,
	advisor *chat.Advisor,
	taskManager *background.Manager,
) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	e.GET("/", handlers.RootHandler)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(gateway))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.POST("/extract", handlers.ExtractHandler(ext))
			jobs.POST("/save", handlers.SaveHandler(coordinator))
		}

		v1.POST("/ingest", handlers.IngestHandler(cfg, coordinator, taskManager))

		llmGroup := v1.Group("/llm")
		{
			llmGroup.GET("/provider", handlers.GetProviderHandler(gateway))
			llmGroup.POST("/provider", handlers.SetProviderHandler(gateway))
		}

		v1.POST("/chat", handlers.ChatHandler(advisor))

		tasks := v1.Group("/tasks")
		{
			tasks.GET("/:id", handlers.TaskStatusHandler(taskManager))
		}
	}
}
