package ratelimit

import (
	"fmt"
	"time"
)

// RateLimitDecision represents the result of a rate limit check.
//
// It encapsulates whether a request should be allowed along with the metadata
// the client needs to understand the current rate limit state.
type RateLimitDecision struct {
	// Key is the identifier used for rate limiting (e.g., IP address).
	Key string

	// Allowed indicates whether the request should be permitted.
	Allowed bool

	// Limit is the maximum number of requests allowed in the time window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the rate limit window will reset.
	ResetAt time.Time

	// RetryAfter is the duration the client should wait before retrying.
	RetryAfter time.Duration
}

// String returns a human-readable representation of the decision.
func (d *RateLimitDecision) String() string {
	if d.Allowed {
		return fmt.Sprintf("RateLimitDecision{Allowed: true, Key: %s, Remaining: %d/%d, ResetAt: %s}",
			d.Key, d.Remaining, d.Limit, d.ResetAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("RateLimitDecision{Allowed: false, Key: %s, Limit: %d, RetryAfter: %s}",
		d.Key, d.Limit, d.RetryAfter.String())
}

// RetryAfterSeconds returns the retry delay in whole seconds.
// This is useful for HTTP headers like Retry-After.
func (d *RateLimitDecision) RetryAfterSeconds() int64 {
	seconds := int64(d.RetryAfter.Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// ResetAtUnix returns the reset time as a Unix timestamp.
// This is useful for HTTP headers like X-RateLimit-Reset.
func (d *RateLimitDecision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// NewAllowedDecision creates a RateLimitDecision for an allowed request.
func NewAllowedDecision(key string, limit, remaining int, resetAt time.Time) *RateLimitDecision {
	retryAfter := time.Until(resetAt)
	if retryAfter < 0 {
		retryAfter = 0
	}

	return &RateLimitDecision{
		Key:        key,
		Allowed:    true,
		Limit:      limit,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}

// NewDeniedDecision creates a RateLimitDecision for a denied request.
func NewDeniedDecision(key string, limit int, resetAt time.Time) *RateLimitDecision {
	return &RateLimitDecision{
		Key:       key,
		Allowed:   false,
		Limit:     limit,
		Remaining: 0,
		ResetAt:   resetAt,
	}
}
