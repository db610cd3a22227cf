package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// GetProviderHandler reports the active LLM provider and availability
func GetProviderHandler(gateway *llm.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.ProviderResponse{
			Provider:  gateway.ActiveProvider(),
			Available: gateway.Availability(),
		})
	}
}

// SetProviderHandler switches the active LLM provider
func SetProviderHandler(gateway *llm.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.ProviderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := gateway.SetProvider(req.Provider); err != nil {
			status := http.StatusInternalServerError
			code := "provider_switch_failed"
			if errors.Is(err, llm.ErrInvalidProvider) {
				status = http.StatusBadRequest
				code = "invalid_provider"
			}
			logger.Error("Provider switch rejected", map[string]interface{}{
				"provider": req.Provider,
				"error":    err.Error(),
			})
			return c.JSON(status, models.ErrorResponse{
				Error:     code,
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.ProviderResponse{
			Provider:  gateway.ActiveProvider(),
			Available: gateway.Availability(),
		})
	}
}
