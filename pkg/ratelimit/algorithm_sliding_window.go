package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// SlidingWindowAlgorithm implements a sliding window rate limiting algorithm.
//
// The algorithm tracks individual request timestamps and counts the requests
// within a rolling time window. Unlike a fixed window it does not allow burst
// spikes at window boundaries.
//
// Algorithm:
//  1. Get current time from the Clock
//  2. Calculate window start time (now - window)
//  3. Atomically check the count in the window and record the request
//  4. If count < limit, allow; otherwise deny with a retry-after hint
type SlidingWindowAlgorithm struct {
	clock Clock
}

// NewSlidingWindowAlgorithm creates a new sliding window rate limiting
// algorithm. A nil clock defaults to the system clock.
func NewSlidingWindowAlgorithm(clock Clock) *SlidingWindowAlgorithm {
	if clock == nil {
		clock = &SystemClock{}
	}
	return &SlidingWindowAlgorithm{clock: clock}
}

// IsAllowed determines whether a request should be allowed within the window.
//
// Stores implementing AtomicRateLimitStore are checked and updated under a
// single lock acquisition; other stores fall back to a check-then-add sequence
// that is subject to TOCTOU races under concurrency.
func (a *SlidingWindowAlgorithm) IsAllowed(
	ctx context.Context,
	key string,
	store RateLimitStore,
	limit int,
	window time.Duration,
) (*RateLimitDecision, error) {
	now := a.clock.Now()
	cutoff := now.Add(-window)
	resetAt := now.Add(window)

	if atomicStore, ok := store.(AtomicRateLimitStore); ok {
		allowed, count, err := atomicStore.CheckAndAddRequest(ctx, key, now, cutoff, limit)
		if err != nil {
			return nil, fmt.Errorf("check and add request: %w", err)
		}
		if allowed {
			return NewAllowedDecision(key, limit, limit-count, resetAt), nil
		}
		decision := NewDeniedDecision(key, limit, resetAt)
		decision.RetryAfter = resetAt.Sub(now)
		return decision, nil
	}

	count, err := store.GetRequestCount(ctx, key, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get request count: %w", err)
	}

	if count >= limit {
		decision := NewDeniedDecision(key, limit, resetAt)
		decision.RetryAfter = resetAt.Sub(now)
		return decision, nil
	}

	if err := store.AddRequest(ctx, key, now); err != nil {
		return nil, fmt.Errorf("add request: %w", err)
	}
	return NewAllowedDecision(key, limit, limit-count-1, resetAt), nil
}
