package middleware

import (
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = echo.HeaderXRequestID

// RequestIDMiddleware adds a unique request ID to each request and a
// request-scoped logger carrying it.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Keep an id set by a proxy
		requestID := c.Request().Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Request().Header.Set(RequestIDHeader, requestID)
		c.Response().Header().Set(RequestIDHeader, requestID)

		logger.Attach(c, logger.GetLogger().With(zap.String("request_id", requestID)))
		return next(c)
	}
}
