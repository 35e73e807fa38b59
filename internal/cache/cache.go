package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidCapacity is returned by New for a capacity below one.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// Config configures a Cache.
type Config[V any] struct {
	// Capacity is the maximum number of entries. Inserting a new key into a
	// full cache evicts the least recently used entry.
	Capacity int
	// TTL expires entries this long after they were stored. Zero disables
	// expiry.
	TTL time.Duration
	// OnEvict, if set, is called with every entry that leaves the cache by
	// eviction, expiry, Remove or Clear. It must not call back into the
	// cache.
	OnEvict func(key string, value V)
}

// Cache maps string keys to values built on demand. All methods are safe
// for concurrent use.
type Cache[V any] struct {
	lru   *expirable.LRU[string, V]
	group singleflight.Group

	// mu orders stores against RemoveIf.
	mu sync.Mutex
}

// New returns an empty cache.
func New[V any](cfg Config[V]) (*Cache[V], error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.Capacity)
	}

	var onEvict expirable.EvictCallback[string, V]
	if cfg.OnEvict != nil {
		onEvict = func(key string, value V) { cfg.OnEvict(key, value) }
	}

	return &Cache[V]{
		lru: expirable.NewLRU[string, V](cfg.Capacity, onEvict, cfg.TTL),
	}, nil
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Add stores value under key. Replacing an existing key refreshes it without
// evicting anything. It reports whether another entry was evicted.
func (c *Cache[V]) Add(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Add(key, value)
}

// GetOrCreate returns the cached value for key, calling build to create it
// when absent. Concurrent callers for the same key share a single build.
// A failed build is returned to every waiting caller and nothing is stored.
func (c *Cache[V]) GetOrCreate(key string, build func() (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lru.Peek(key); ok {
			return v, nil
		}

		v, err := build()
		if err != nil {
			return nil, err
		}

		c.Add(key, v)

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return res.(V), nil
}

// Remove drops key. It reports whether the key was present.
func (c *Cache[V]) Remove(key string) bool {
	return c.lru.Remove(key)
}

// RemoveIf drops key only while its value satisfies match, so a caller
// discarding a value it saw earlier cannot drop a replacement stored since.
// It reports whether the key was removed.
func (c *Cache[V]) RemoveIf(key string, match func(V) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Peek(key)
	if !ok || !match(v) {
		return false
	}

	return c.lru.Remove(key)
}

// Keys returns the keys from least to most recently used.
func (c *Cache[V]) Keys() []string {
	return c.lru.Keys()
}

// Len returns the number of entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	c.lru.Purge()
}
