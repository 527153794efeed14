package cachemanager

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type viewKey string

type cachedView struct {
	ID    int
	Title string
}

func newViewCache() *InMemoryCacheManager[viewKey, cachedView] {
	return NewInMemoryCacheManager[viewKey, cachedView]("views", DefaultExpiration, DefaultCleanupInterval)
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := newViewCache()
	view := cachedView{ID: 1, Title: "Board election"}
	cache.Set(context.Background(), "assignments/assignment:1", view, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "assignments/assignment:1")
	require.True(t, ok)
	require.Equal(t, view, got)
}

func TestInMemoryCacheManager_GetMissingValue(t *testing.T) {
	cache := newViewCache()

	got, ok := cache.Get(context.Background(), "users/user:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := newViewCache()
	cache.cache.Set("users/user:1", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "users/user:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_EntriesExpire(t *testing.T) {
	cache := newViewCache()
	ctx := context.Background()
	cache.Set(ctx, "core/tag:1", cachedView{ID: 1}, 20*time.Millisecond)
	cache.Set(ctx, "core/tag:2", cachedView{ID: 2}, time.Hour)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "core/tag:1")
		return !ok
	}, time.Second, 5*time.Millisecond)

	got, ok := cache.Get(ctx, "core/tag:2")
	require.True(t, ok)
	require.Equal(t, 2, got.ID)
}

func TestInMemoryCacheManager_Len(t *testing.T) {
	cache := newViewCache()
	ctx := context.Background()
	require.Zero(t, cache.Len())

	cache.Set(ctx, "users/user:1", cachedView{ID: 1}, DefaultExpiration)
	cache.Set(ctx, "users/user:2", cachedView{ID: 2}, DefaultExpiration)
	cache.Set(ctx, "users/user:2", cachedView{ID: 2, Title: "again"}, DefaultExpiration)
	require.Equal(t, 2, cache.Len())
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := newViewCache()
	ctx := context.Background()
	require.NoError(t, cache.Delete(ctx))

	cache.Set(ctx, "a", cachedView{ID: 1}, DefaultExpiration)
	require.NoError(t, cache.Delete(ctx, "a"))

	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteFunc(t *testing.T) {
	cache := newViewCache()
	ctx := context.Background()
	cache.Set(ctx, "users/user:1", cachedView{ID: 1}, DefaultExpiration)
	cache.Set(ctx, "users/user:2", cachedView{ID: 2}, DefaultExpiration)
	cache.Set(ctx, "core/tag:1", cachedView{ID: 1}, DefaultExpiration)

	removed := cache.DeleteFunc(ctx, func(k viewKey) bool {
		return strings.HasPrefix(string(k), "users/user:")
	})
	require.Equal(t, 2, removed)
	require.Equal(t, 1, cache.Len())

	_, ok := cache.Get(ctx, "core/tag:1")
	require.True(t, ok)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := newViewCache()
	ctx := context.Background()
	cache.Set(ctx, "a", cachedView{ID: 1}, DefaultExpiration)

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}
