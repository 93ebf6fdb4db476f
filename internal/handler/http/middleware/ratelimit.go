package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"blogforge/internal/handler/http/respond"
	"blogforge/pkg/config"
	"blogforge/pkg/ratelimit"
)

// GenerationRateLimiterConfig holds configuration for the generation rate limiter.
// Generation endpoints call a paid language model API, so they carry a much
// tighter budget than ordinary read endpoints.
type GenerationRateLimiterConfig struct {
	// Limit is the maximum number of generation requests per client IP
	// within the window. Default: 10.
	Limit int

	// Window is the sliding time window. Default: 15 minutes.
	Window time.Duration

	// Enabled controls whether rate limiting is active. Default: true.
	Enabled bool
}

// GenerationRateLimiterConfigFromEnv reads the limiter configuration from
// GEN_MAX_REQUESTS, GEN_WINDOW_MINUTES, and RATELIMIT_ENABLED.
func GenerationRateLimiterConfigFromEnv() GenerationRateLimiterConfig {
	return GenerationRateLimiterConfig{
		Limit:   config.GetEnvInt("GEN_MAX_REQUESTS", 10),
		Window:  time.Duration(config.GetEnvInt("GEN_WINDOW_MINUTES", 15)) * time.Minute,
		Enabled: config.GetEnvBool("RATELIMIT_ENABLED", true),
	}
}

// GenerationRateLimiter is HTTP middleware that rate limits article
// generation requests per client IP using a sliding window. It is attached
// only to the generation routes; listing, fetching, and deleting articles
// are never gated by it.
//
// Response headers on every gated request:
//   - X-RateLimit-Limit: maximum requests allowed in the window
//   - X-RateLimit-Remaining: requests left in the current window
//   - X-RateLimit-Reset: Unix timestamp when the window resets
//
// A limited request receives 429 with a Retry-After header.
type GenerationRateLimiter struct {
	config    GenerationRateLimiterConfig
	store     ratelimit.RateLimitStore
	algorithm ratelimit.RateLimitAlgorithm
	extractIP func(*http.Request) string
}

// NewGenerationRateLimiter creates the generation rate limiter middleware.
// extractIP resolves the client key from a request; pass nil to key on
// RemoteAddr only.
func NewGenerationRateLimiter(
	cfg GenerationRateLimiterConfig,
	store ratelimit.RateLimitStore,
	algorithm ratelimit.RateLimitAlgorithm,
	extractIP func(*http.Request) string,
) *GenerationRateLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if extractIP == nil {
		extractIP = func(r *http.Request) string { return r.RemoteAddr }
	}

	return &GenerationRateLimiter{
		config:    cfg,
		store:     store,
		algorithm: algorithm,
		extractIP: extractIP,
	}
}

// Middleware returns the HTTP middleware function.
func (rl *GenerationRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := "gen:" + rl.extractIP(r)

			decision, err := rl.algorithm.IsAllowed(
				r.Context(), key, rl.store, rl.config.Limit, rl.config.Window)
			if err != nil {
				// Limiter failure fails open: availability over strictness
				slog.Error("generation rate limiter failed, allowing request",
					slog.String("key", key),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAtUnix(), 10))

			if !decision.Allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(decision.RetryAfterSeconds(), 10))
				slog.Warn("generation rate limit exceeded",
					slog.String("key", key),
					slog.Int("limit", decision.Limit))
				respond.JSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded, try again later",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
