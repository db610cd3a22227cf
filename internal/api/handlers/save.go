package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/ingest"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// SaveHandler persists records from a prior extraction
func SaveHandler(coordinator *ingest.Coordinator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.SaveRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind save request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Save request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		counts, err := coordinator.SaveExtraction(c.Request().Context(), &models.Extraction{
			Jobs:      req.Jobs,
			Companies: req.Companies,
		})
		if err != nil {
			logger.Error("Failed to save extracted records", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "save_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Save request completed", map[string]interface{}{
			"jobs_created":      counts.JobsCreated,
			"companies_created": counts.CompaniesCreated,
			"jobs_skipped":      counts.JobsSkipped,
		})

		return c.JSON(http.StatusOK, models.SaveResponse{
			Success:          true,
			JobsCreated:      counts.JobsCreated,
			CompaniesCreated: counts.CompaniesCreated,
			JobsSkipped:      counts.JobsSkipped,
			RequestID:        requestID,
		})
	}
}
