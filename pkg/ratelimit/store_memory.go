package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryRateLimitStore is a thread-safe in-memory implementation of
// RateLimitStore. It tracks request timestamps per key and bounds memory by
// evicting the least recently used key when capacity is reached.
//
// The store implements AtomicRateLimitStore; check-and-add happens under a
// single lock acquisition.
type InMemoryRateLimitStore struct {
	mu       sync.RWMutex
	requests map[string]*timestampList
	maxKeys  int
}

// timestampList holds timestamps for a single key.
type timestampList struct {
	timestamps []time.Time
	lastAccess time.Time
}

// InMemoryStoreConfig holds configuration for InMemoryRateLimitStore.
type InMemoryStoreConfig struct {
	// MaxKeys is the maximum number of keys to store in memory.
	// When this limit is reached, the least recently used key is evicted.
	// Default: 10000
	MaxKeys int
}

// NewInMemoryRateLimitStore creates a new in-memory rate limit store.
func NewInMemoryRateLimitStore(config InMemoryStoreConfig) *InMemoryRateLimitStore {
	if config.MaxKeys <= 0 {
		config.MaxKeys = 10000
	}

	return &InMemoryRateLimitStore{
		requests: make(map[string]*timestampList),
		maxKeys:  config.MaxKeys,
	}
}

// AddRequest records a new request timestamp for the given key.
func (s *InMemoryRateLimitStore) AddRequest(ctx context.Context, key string, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(key, timestamp)
	return nil
}

// GetRequestCount returns the number of requests for the given key that
// occurred after the cutoff time.
func (s *InMemoryRateLimitStore) GetRequestCount(ctx context.Context, key string, cutoff time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tsList, exists := s.requests[key]
	if !exists {
		return 0, nil
	}

	count := 0
	for _, ts := range tsList.timestamps {
		if ts.After(cutoff) {
			count++
		}
	}
	return count, nil
}

// CheckAndAddRequest atomically checks whether the key is within the limit
// and records the request if allowed.
func (s *InMemoryRateLimitStore) CheckAndAddRequest(ctx context.Context, key string, timestamp time.Time, cutoff time.Time, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	if tsList, exists := s.requests[key]; exists {
		// Drop expired timestamps while counting; keeps per-key memory
		// proportional to the limit.
		valid := tsList.timestamps[:0]
		for _, ts := range tsList.timestamps {
			if ts.After(cutoff) {
				valid = append(valid, ts)
			}
		}
		tsList.timestamps = valid
		count = len(valid)
	}

	if count >= limit {
		return false, count, nil
	}

	s.addLocked(key, timestamp)
	return true, count + 1, nil
}

// Cleanup removes request timestamps older than the cutoff time and deletes
// keys that have no remaining timestamps.
func (s *InMemoryRateLimitStore) Cleanup(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, tsList := range s.requests {
		valid := tsList.timestamps[:0]
		for _, ts := range tsList.timestamps {
			if ts.After(cutoff) {
				valid = append(valid, ts)
			}
		}
		tsList.timestamps = valid
		if len(valid) == 0 {
			delete(s.requests, key)
		}
	}
	return nil
}

// KeyCount returns the number of active keys currently in storage.
func (s *InMemoryRateLimitStore) KeyCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests), nil
}

// addLocked records a timestamp for the key. Caller must hold s.mu.
func (s *InMemoryRateLimitStore) addLocked(key string, timestamp time.Time) {
	tsList, exists := s.requests[key]
	if !exists {
		if len(s.requests) >= s.maxKeys {
			s.evictOldestLocked()
		}
		tsList = &timestampList{timestamps: make([]time.Time, 0, 16)}
		s.requests[key] = tsList
	}
	tsList.timestamps = append(tsList.timestamps, timestamp)
	tsList.lastAccess = timestamp
}

// evictOldestLocked removes the least recently accessed key.
// Caller must hold s.mu.
func (s *InMemoryRateLimitStore) evictOldestLocked() {
	var oldestKey string
	var oldestAccess time.Time
	first := true
	for key, tsList := range s.requests {
		if first || tsList.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = tsList.lastAccess
			first = false
		}
	}
	if oldestKey != "" {
		delete(s.requests, oldestKey)
	}
}
