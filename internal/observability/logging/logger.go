// Package logging provides helpers for request-scoped structured logging.
package logging

import (
	"context"
	"log/slog"

	"blogforge/internal/handler/http/requestid"
)

// WithRequestID returns a logger pre-populated with the request ID from the
// context. If the context carries no request ID, the logger is returned
// unchanged. A nil logger falls back to slog.Default.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		return logger.With(slog.String("request_id", reqID))
	}
	return logger
}
