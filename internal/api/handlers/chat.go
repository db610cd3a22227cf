package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/chat"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// ChatHandler handles career advisor chat messages
func ChatHandler(advisor *chat.Advisor) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.ChatRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind chat request", map[string]interface{}{"error": err.Error()})
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

		resp, err := advisor.Handle(c.Request().Context(), req)
		if err != nil {
			logger.Error("Chat handling failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "chat_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}
