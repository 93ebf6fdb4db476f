package middleware

import "log/slog"

// OriginValidator decides whether a request origin may use the API.
// Implementations must be safe for concurrent use.
type OriginValidator interface {
	// IsAllowed reports whether the given Origin header value is permitted.
	IsAllowed(origin string) bool
}

// CORSLogger is the logging interface used by the CORS middleware.
// It decouples the middleware from a concrete logger so tests can use NoOpLogger.
type CORSLogger interface {
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// SlogAdapter adapts *slog.Logger to the CORSLogger interface.
type SlogAdapter struct {
	Logger *slog.Logger
}

func (a *SlogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.Logger.Warn(msg, attrsFromMap(fields)...)
}

func (a *SlogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.Logger.Debug(msg, attrsFromMap(fields)...)
}

func attrsFromMap(fields map[string]interface{}) []any {
	attrs := make([]any, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

// NoOpLogger discards all log output. Used in tests.
type NoOpLogger struct{}

func (NoOpLogger) Warn(string, map[string]interface{})  {}
func (NoOpLogger) Debug(string, map[string]interface{}) {}
