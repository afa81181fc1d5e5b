// Package context carries request-scoped values (request ID, logger) between
// delivery middleware and the layers below it.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// echoRequestIDKey is where the request ID lives on echo.Context.
const echoRequestIDKey = "request_id"

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

// RequestID returns the ID set by the request ID middleware, or "" before it ran.
func RequestID(c echo.Context) string {
	id, _ := c.Get(echoRequestIDKey).(string)

	return id
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// WithRequest returns ctx carrying requestID and its logger.
func WithRequest(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	if logger != nil {
		ctx = context.WithValue(ctx, loggerKey, logger)
	}

	return ctx
}

// WithLogger replaces the request logger, e.g. after the caller is known.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// RequestIDFrom returns the request ID stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// LoggerFrom returns the request logger stored in ctx, or nil.
func LoggerFrom(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)

	return logger
}

// LoggerOr returns the request logger, falling back to fallback.
func LoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := LoggerFrom(ctx); logger != nil {
		return logger
	}

	return fallback
}
