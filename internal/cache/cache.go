// Package cache provides a small TTL cache used to memoize report
// computations between refreshes. Caching is an optimization only: callers
// must treat cached and recomputed results as equivalent.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTL is a thread-safe in-memory cache whose entries expire after a fixed
// duration. Expired entries are dropped lazily on access.
type TTL[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
}

// New creates a TTL cache. A non-positive ttl disables caching entirely.
func New[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{items: make(map[string]entry[T]), ttl: ttl}
}

// Get returns the cached value for key, or false if absent or expired.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key with the configured TTL.
func (c *TTL[T]) Set(key string, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[T]{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Invalidate removes key, forcing the next Get to miss.
func (c *TTL[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}
