// Package handlers contains the echo handlers for every API surface.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/extractor"
	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

var validate = validator.New()

// ExtractHandler handles HTML job extraction requests
func ExtractHandler(ext *extractor.Extractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.ExtractRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind extract request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Extract request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Processing extract request", map[string]interface{}{
			"html_length": len(req.HTML),
		})

		extraction, provider, err := ext.Extract(c.Request().Context(), req.HTML)
		if err != nil {
			logger.Error("Extraction failed", map[string]interface{}{"error": err.Error()})

			status := http.StatusInternalServerError
			code := "extraction_failed"
			if errors.Is(err, llm.ErrProviderUnavailable) {
				status = http.StatusServiceUnavailable
				code = "llm_unavailable"
			} else if errors.Is(err, extractor.ErrInvalidExtractionShape) {
				status = http.StatusUnprocessableEntity
				code = "invalid_extraction"
			}

			return c.JSON(status, models.ErrorResponse{
				Error:     code,
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Extract request completed", map[string]interface{}{
			"jobs":            len(extraction.Jobs),
			"companies":       len(extraction.Companies),
			"provider":        provider,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, models.ExtractResponse{
			Success:        true,
			Data:           extraction,
			Provider:       provider,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		})
	}
}
