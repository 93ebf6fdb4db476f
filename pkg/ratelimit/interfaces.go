// Package ratelimit provides framework-agnostic rate limiting functionality.
//
// This package implements rate limiting using pluggable storage backends and
// algorithms. It is designed to be reusable across different contexts (HTTP,
// CLI, background jobs) and to be swappable for a distributed counter without
// touching call sites.
package ratelimit

import (
	"context"
	"time"
)

// RateLimitStore defines the interface for storing and retrieving rate limit state.
//
// Implementations can use in-memory storage, Redis, databases, or other backends.
// All methods must be thread-safe.
type RateLimitStore interface {
	// AddRequest records a new request timestamp for the given key.
	AddRequest(ctx context.Context, key string, timestamp time.Time) error

	// GetRequestCount returns the number of requests for the given key
	// that occurred after the cutoff time.
	GetRequestCount(ctx context.Context, key string, cutoff time.Time) (int, error)

	// Cleanup removes request timestamps older than the cutoff time.
	Cleanup(ctx context.Context, cutoff time.Time) error

	// KeyCount returns the number of active keys currently in storage.
	KeyCount(ctx context.Context) (int, error)
}

// AtomicRateLimitStore extends RateLimitStore with an atomic check-and-add
// operation. The combined check and add prevents TOCTOU races where concurrent
// requests could bypass the limit between the count and the insert.
type AtomicRateLimitStore interface {
	RateLimitStore

	// CheckAndAddRequest atomically checks whether a request is within the
	// limit and records it if allowed.
	//
	// Returns:
	//   - allowed: true if the request was within limit and recorded
	//   - count: requests in the window (including this one if allowed)
	//   - err: error if the operation fails
	CheckAndAddRequest(ctx context.Context, key string, timestamp time.Time, cutoff time.Time, limit int) (allowed bool, count int, err error)
}

// RateLimitAlgorithm defines the interface for rate limiting algorithms.
type RateLimitAlgorithm interface {
	// IsAllowed determines whether a request should be allowed based on the
	// current rate limit state, returning a decision with metadata.
	IsAllowed(ctx context.Context, key string, store RateLimitStore, limit int, window time.Duration) (*RateLimitDecision, error)
}

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
