// Package cache provides a generic, thread-safe populate-once cache.
//
// The cache is parameterized by a comparable key type K and value type V.
// Entries are created lazily via GetOrCompute and persist until explicitly
// deleted or cleared; there is no automatic eviction. Statistics are always
// collected; Prometheus metrics are optional via functional options.
package cache

import (
	"sync"

	"github.com/c360/factorykit/errors"
)

// Cache is a thread-safe map with at-most-one population per key.
// Concurrent GetOrCompute calls for the same missing key run the compute
// function exactly once; every caller observes that single result. Callers
// for different keys proceed independently. Failed computations are not
// stored, so the next call retries.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]V
	inflight map[K]*population[V]
	stats    *Statistics      // ALWAYS initialized
	metrics  *cacheMetrics    // Optional, if metrics enabled
}

// population tracks a single in-flight compute for a key.
type population[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// New creates an empty cache.
// Returns an error if metrics registration fails when requested.
func New[K comparable, V any](options ...Option) (*Cache[K, V], error) {
	opts := applyOptions(options...)

	// Stats are always initialized - observability is not optional
	stats := NewStatistics()

	var metrics *cacheMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "New", "metrics registration")
		}
	}

	return &Cache[K, V]{
		items:    make(map[K]V),
		inflight: make(map[K]*population[V]),
		stats:    stats,
		metrics:  metrics,
	}, nil
}

// Get retrieves a value by key. It never triggers a population.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	value, exists := c.items[key]
	c.mu.Unlock()

	c.recordLookup(exists)
	return value, exists
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. At most one compute runs per key at a time; concurrent callers for
// the same key wait for and share the single result, including its error. An
// error result is not stored.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	if value, exists := c.items[key]; exists {
		c.mu.Unlock()
		c.recordLookup(true)
		return value, nil
	}

	if p, waiting := c.inflight[key]; waiting {
		c.mu.Unlock()
		c.recordLookup(false)
		<-p.done
		return p.value, p.err
	}

	p := &population[V]{done: make(chan struct{})}
	c.inflight[key] = p
	c.mu.Unlock()
	c.recordLookup(false)

	value, err := compute()

	c.mu.Lock()
	if err == nil {
		c.items[key] = value
		c.recordStore(len(c.items))
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	p.value, p.err = value, err
	close(p.done)

	return value, err
}

// Delete removes an entry by key. Returns true if the key existed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	_, exists := c.items[key]
	if exists {
		delete(c.items, key)
	}
	size := len(c.items)
	c.mu.Unlock()

	if exists {
		c.stats.Delete()
		c.stats.UpdateSize(int64(size))
		if c.metrics != nil {
			c.metrics.recordDelete()
			c.metrics.updateSize(size)
		}
	}
	return exists
}

// Clear removes all entries. Safe when no population is in flight; clearing
// concurrently with an in-flight population has unspecified interleaving and
// is intended for test isolation only.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.items = make(map[K]V)
	c.mu.Unlock()

	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.updateSize(0)
	}
}

// Size returns the current number of entries.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns a slice of all keys currently in the cache (order unspecified).
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns the cache statistics.
func (c *Cache[K, V]) Stats() *Statistics {
	return c.stats
}

func (c *Cache[K, V]) recordLookup(hit bool) {
	if hit {
		c.stats.Hit()
		if c.metrics != nil {
			c.metrics.recordHit()
		}
		return
	}
	c.stats.Miss()
	if c.metrics != nil {
		c.metrics.recordMiss()
	}
}

func (c *Cache[K, V]) recordStore(size int) {
	c.stats.Set()
	c.stats.UpdateSize(int64(size))
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(size)
	}
}
