// Package cachemanager keeps built values in go-cache and loads them on a
// miss. The view-model store caches materialized views through it.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the cache surface consumers depend on. Keys are evicted
// either one by one or by predicate, so dependents of a changed record can be
// dropped in one pass.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	DeleteFunc(ctx context.Context, match func(key K) bool) int
	Flush(ctx context.Context) error
	Len() int
}
