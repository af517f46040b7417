// Package ttlcache provides a concurrency-safe key/value cache with
// per-entry absolute expiry and a clear-all overflow policy.
package ttlcache

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultMaxEntries = 1000

// Option configures a Cache
type Option func(*config)

type config struct {
	maxEntries int
	clock      func() time.Time
	coalesce   bool
}

// WithMaxEntries sets the soft bound on stored entries
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithCoalescing makes concurrent misses on the same key share one compute call
func WithCoalescing() Option {
	return func(c *config) {
		c.coalesce = true
	}
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps K to V with a fixed time-to-live per entry.
// When a write finds more than maxEntries stored, every entry is dropped first.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	entries    map[K]entry[V]
	ttl        time.Duration
	maxEntries int
	clock      func() time.Time
	group      *singleflight.Group
}

// New builds a Cache whose entries live for ttl
func New[K comparable, V any](ttl time.Duration, opts ...Option) *Cache[K, V] {
	cfg := &config{
		maxEntries: defaultMaxEntries,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Cache[K, V]{
		entries:    make(map[K]entry[V]),
		ttl:        ttl,
		maxEntries: cfg.maxEntries,
		clock:      cfg.clock,
	}
	if cfg.coalesce {
		c.group = &singleflight.Group{}
	}
	return c
}

// Get returns the value for key if present and unexpired.
// An expired entry is evicted.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	now := c.clock()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if e.expiresAt.Before(now) {
		c.mu.Lock()
		// a concurrent Put may have refreshed the key
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrCompute returns the cached value for key, or calls compute and stores
// its result. Errors from compute are returned and nothing is stored.
// Without coalescing, concurrent misses may each call compute.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	if c.group == nil {
		return c.computeAndStore(key, compute)
	}

	res, err, _ := c.group.Do(fmt.Sprintf("%#v", key), func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		return c.computeAndStore(key, compute)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (c *Cache[K, V]) computeAndStore(key K, compute func() (V, error)) (V, error) {
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// Put stores value under key with a fresh expiry, replacing any previous entry
func (c *Cache[K, V]) Put(key K, value V) {
	expiresAt := c.clock().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) > c.maxEntries {
		c.entries = make(map[K]entry[V])
	}
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
}

// Invalidate removes key
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every entry
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
