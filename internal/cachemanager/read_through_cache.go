package cachemanager

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loader builds the value for key on a cache miss.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits     int64
	Misses   int64
	Failures int64
}

type readThroughOptions struct {
	ttl    time.Duration
	bypass bool
}

// ReadThroughOption configures NewReadThroughCache.
type ReadThroughOption func(*readThroughOptions)

// WithTTL sets the lifetime of loaded entries. Zero keeps the manager's
// default expiration.
func WithTTL(ttl time.Duration) ReadThroughOption {
	return func(o *readThroughOptions) { o.ttl = ttl }
}

// Bypass makes every Get call the loader without touching the cache.
func Bypass(bypass bool) ReadThroughOption {
	return func(o *readThroughOptions) { o.bypass = bypass }
}

// ReadThroughCache loads missing values and caches successful loads.
// Errors are returned to the caller and never cached. A load that overlaps an
// Invalidate call is returned but not stored.
type ReadThroughCache[K comparable, V any] struct {
	cache  CacheManager[K, V]
	load   Loader[K, V]
	ttl    time.Duration
	bypass bool

	// gen is bumped under the write lock; stores of loaded values hold the
	// read lock and only happen if gen is unchanged since the load began.
	mu  sync.RWMutex
	gen uint64

	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

func NewReadThroughCache[K comparable, V any](cache CacheManager[K, V], load Loader[K, V], opts ...ReadThroughOption) *ReadThroughCache[K, V] {
	var o readThroughOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &ReadThroughCache[K, V]{
		cache:  cache,
		load:   load,
		ttl:    o.ttl,
		bypass: o.bypass,
	}
}

// Get returns the cached value for key, loading and storing it on a miss.
func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if r.bypass {
		return r.loadCounted(ctx, key)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		r.hits.Add(1)
		return value, nil
	}

	r.mu.RLock()
	gen := r.gen
	r.mu.RUnlock()

	value, err := r.loadCounted(ctx, key)
	if err != nil {
		return value, err
	}

	r.mu.RLock()
	if r.gen == gen {
		r.cache.Set(ctx, key, value, r.ttl)
	}
	r.mu.RUnlock()
	return value, nil
}

// Invalidate runs evict against the underlying manager and discards the
// result of every load still in flight.
func (r *ReadThroughCache[K, V]) Invalidate(evict func(cache CacheManager[K, V])) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	evict(r.cache)
}

// Generation returns the number of Invalidate calls so far.
func (r *ReadThroughCache[K, V]) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

func (r *ReadThroughCache[K, V]) loadCounted(ctx context.Context, key K) (V, error) {
	r.misses.Add(1)
	value, err := r.load(ctx, key)
	if err != nil {
		r.failures.Add(1)
	}
	return value, err
}

// Stats returns the lookup counters.
func (r *ReadThroughCache[K, V]) Stats() Stats {
	return Stats{
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
		Failures: r.failures.Load(),
	}
}
