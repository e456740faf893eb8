package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey contextKey = "logger"

	// EchoKey is the echo.Context key holding the request logger.
	EchoKey = "logger"
)

// FromContext retrieves the logger from the context
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return GetLogger()
	}
	logger, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return logger
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromEcho retrieves the logger from the Echo context
func FromEcho(c echo.Context) *zap.Logger {
	if logger, ok := c.Get(EchoKey).(*zap.Logger); ok {
		return logger
	}
	return FromContext(c.Request().Context())
}

// Attach stores logger on both the echo context and the request context.
func Attach(c echo.Context, logger *zap.Logger) {
	c.Set(EchoKey, logger)
	c.SetRequest(c.Request().WithContext(WithContext(c.Request().Context(), logger)))
}
