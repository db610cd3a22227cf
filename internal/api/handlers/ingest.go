package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/background"
	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/ingest"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// IngestHandler queues an ingestion run as a background task and returns 202
// with the process id to poll.
func IngestHandler(cfg *config.Config, coordinator *ingest.Coordinator, taskManager *background.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.IngestRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind ingest request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		queries := buildQueries(cfg, req)
		processID := utils.GenerateRequestID()

		err := taskManager.Submit(processID, background.TaskTypeIngest, func(ctx context.Context) (interface{}, error) {
			return coordinator.Run(ctx, queries)
		})
		if err != nil {
			logger.Error("Failed to queue ingestion run", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "task_submission_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Ingestion run queued", map[string]interface{}{
			"process_id": processID,
			"queries":    len(queries),
		})

		return c.JSON(http.StatusAccepted, models.AcceptedResponse{
			ProcessID: processID,
			Status:    string(background.TaskStatusAccepted),
			Timestamp: time.Now(),
		})
	}
}

// TaskStatusHandler reports the status and result of a background task
func TaskStatusHandler(taskManager *background.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		processID := c.Param("id")

		result, err := taskManager.GetTaskResult(c.Request().Context(), processID)
		if err != nil {
			status := http.StatusInternalServerError
			code := "task_lookup_failed"
			if errors.Is(err, background.ErrTaskNotFound) {
				status = http.StatusNotFound
				code = "task_not_found"
			}
			return c.JSON(status, models.ErrorResponse{
				Error:     code,
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, result)
	}
}

// buildQueries turns an ingest request into source queries, falling back to
// the configured defaults when the request names none.
func buildQueries(cfg *config.Config, req models.IngestRequest) []sources.Query {
	location := req.Location
	if location == "" {
		location = cfg.Ingest.Location
	}

	if req.Query != "" {
		return []sources.Query{{Keyword: req.Query, Location: location}}
	}

	queries := make([]sources.Query, 0, len(cfg.Ingest.Queries))
	for _, keyword := range cfg.Ingest.Queries {
		queries = append(queries, sources.Query{Keyword: keyword, Location: location})
	}
	return queries
}
