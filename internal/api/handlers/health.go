package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can do useful work. The LLM
// check is configuration-only; it makes no network calls.
func ReadinessHandler(gateway *llm.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api": "ok",
			"llm": "ok",
		}
		status := "ready"
		code := http.StatusOK

		if !gateway.Usable() {
			checks["llm"] = "no provider configured"
			status = "degraded"
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(code, response)
	}
}

// RootHandler describes the service and its surface
func RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service": "jobhound-ingest",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /health",
			"POST /api/v1/jobs/extract",
			"POST /api/v1/jobs/save",
			"POST /api/v1/ingest",
			"GET /api/v1/tasks/:id",
			"GET /api/v1/llm/provider",
			"POST /api/v1/llm/provider",
			"POST /api/v1/chat",
		},
	})
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}
