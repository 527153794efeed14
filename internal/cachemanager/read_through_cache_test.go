package cachemanager

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plenum/internal/mocks"
)

var errMissingRecord = errors.New("missing record")

// loadView builds a view whose id is the key length; the empty key fails.
func loadView(calls *int) Loader[string, cachedView] {
	return func(ctx context.Context, key string) (cachedView, error) {
		*calls++
		if key == "" {
			return cachedView{}, errMissingRecord
		}
		return cachedView{ID: len(key), Title: key}, nil
	}
}

func TestReadThroughCache_Bypass(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, cachedView](t)
	calls := 0

	rt := NewReadThroughCache(managerMock, loadView(&calls), Bypass(true))

	got, err := rt.Get(context.Background(), "key")
	require.NoError(t, err)
	require.Equal(t, cachedView{ID: 3, Title: "key"}, got)
	require.Equal(t, 1, calls)
	require.Equal(t, Stats{Misses: 1}, rt.Stats())
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReadThroughCache_Hit(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, cachedView](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return(cachedView{ID: 7}, true)
	calls := 0

	rt := NewReadThroughCache(managerMock, loadView(&calls))

	got, err := rt.Get(context.Background(), "key")
	require.NoError(t, err)
	require.Equal(t, 7, got.ID)
	require.Zero(t, calls)
	require.Equal(t, Stats{Hits: 1}, rt.Stats())
}

func TestReadThroughCache_MissLoadsAndStoresWithTTL(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, cachedView](t)
	managerMock.EXPECT().Get(mock.Anything, "abc").Return(cachedView{}, false)
	managerMock.EXPECT().Set(mock.Anything, "abc", cachedView{ID: 3, Title: "abc"}, time.Minute).Return()
	calls := 0

	rt := NewReadThroughCache(managerMock, loadView(&calls), WithTTL(time.Minute))

	got, err := rt.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, 3, got.ID)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_ErrorsAreNotCached(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, cachedView](t)
	managerMock.EXPECT().Get(mock.Anything, "").Return(cachedView{}, false)
	calls := 0

	rt := NewReadThroughCache(managerMock, loadView(&calls))

	_, err := rt.Get(context.Background(), "")
	require.ErrorIs(t, err, errMissingRecord)
	require.Equal(t, Stats{Misses: 1, Failures: 1}, rt.Stats())
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_WithRealManager(t *testing.T) {
	calls := 0
	rt := NewReadThroughCache[string, cachedView](
		NewInMemoryCacheManager[string, cachedView]("views", DefaultExpiration, DefaultCleanupInterval),
		loadView(&calls),
	)

	for range 3 {
		_, err := rt.Get(context.Background(), "motions/motion:1")
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls)
	require.Equal(t, Stats{Hits: 2, Misses: 1}, rt.Stats())

	removed := 0
	rt.Invalidate(func(cache CacheManager[string, cachedView]) {
		removed = cache.DeleteFunc(context.Background(), func(k string) bool { return k == "motions/motion:1" })
	})
	require.Equal(t, 1, removed)
	_, err := rt.Get(context.Background(), "motions/motion:1")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_ConcurrentStats(t *testing.T) {
	var mu sync.Mutex
	loads := 0
	rt := NewReadThroughCache[string, cachedView](
		NewInMemoryCacheManager[string, cachedView]("views", DefaultExpiration, DefaultCleanupInterval),
		func(ctx context.Context, key string) (cachedView, error) {
			mu.Lock()
			loads++
			mu.Unlock()
			return cachedView{Title: key}, nil
		},
	)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = rt.Get(context.Background(), "core/tag:1")
			}
		}()
	}
	wg.Wait()

	stats := rt.Stats()
	require.Equal(t, int64(400), stats.Hits+stats.Misses)
	mu.Lock()
	require.Equal(t, int64(loads), stats.Misses)
	mu.Unlock()
}

func TestReadThroughCache_InvalidateDuringLoadDropsResult(t *testing.T) {
	manager := NewInMemoryCacheManager[string, cachedView]("views", DefaultExpiration, DefaultCleanupInterval)
	var rt *ReadThroughCache[string, cachedView]
	version := 1
	rt = NewReadThroughCache[string, cachedView](manager,
		func(ctx context.Context, key string) (cachedView, error) {
			view := cachedView{ID: version, Title: key}
			if version == 1 {
				// The record changes while this load is still building.
				version = 2
				rt.Invalidate(func(cache CacheManager[string, cachedView]) {
					_ = cache.Delete(ctx, key)
				})
			}
			return view, nil
		},
	)

	got, err := rt.Get(context.Background(), "assignments/assignment:1")
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)
	require.Zero(t, manager.Len(), "a load overlapping an invalidation must not be cached")
	require.Equal(t, uint64(1), rt.Generation())

	got, err = rt.Get(context.Background(), "assignments/assignment:1")
	require.NoError(t, err)
	require.Equal(t, 2, got.ID)
	require.Equal(t, 1, manager.Len())
}
