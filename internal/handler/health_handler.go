package handler

import (
	"net/http"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck handles the health check endpoint
func (h *Handler) HealthCheck(c echo.Context) error {
	response := map[string]interface{}{
		"status": "ok",
		"time":   h.now().Format(time.RFC3339),
	}

	// Check database connection if requested
	if c.QueryParam("check") == "db" && h.Ping != nil {
		if err := h.Ping(c.Request().Context()); err != nil {
			logger.FromEcho(c).Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to ping database"
			return c.JSON(http.StatusInternalServerError, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}

// Hello returns a simple welcome message
func (h *Handler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to Lead Wrangler",
		"version": "1.0.0",
	})
}

func (h *Handler) AboutUs(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":     "Lead Wrangler",
		"location": "Fort Worth, Texas",
		"features": []string{
			"Comprehensive lead management system",
			"Property and opportunity tracking",
			"Service ticket management",
			"Task organization and scheduling",
			"Built for Texas real estate professionals",
		},
	})
}

// NotFound answers every unknown path.
func (h *Handler) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"error": "page not found",
		"path":  c.Request().URL.Path,
	})
}
