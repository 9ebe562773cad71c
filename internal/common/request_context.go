package common

import (
	"context"

	"github.com/ternarybob/arbor"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
)

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, logger arbor.ILogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the request-scoped logger, else fallback, else the global logger.
func LoggerFromContext(ctx context.Context, fallback arbor.ILogger) arbor.ILogger {
	if logger, ok := ctx.Value(loggerKey).(arbor.ILogger); ok && logger != nil {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return GetLogger()
}
