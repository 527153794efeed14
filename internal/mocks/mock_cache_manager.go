// Package mocks holds testify mocks for plenum interfaces, written in the
// mockery expecter style.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCacheManager mocks cachemanager.CacheManager.
type MockCacheManager[K comparable, V any] struct {
	mock.Mock
}

type MockCacheManager_Expecter[K comparable, V any] struct {
	mock *mock.Mock
}

func (_m *MockCacheManager[K, V]) EXPECT() *MockCacheManager_Expecter[K, V] {
	return &MockCacheManager_Expecter[K, V]{mock: &_m.Mock}
}

func (_m *MockCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	ret := _m.Called(ctx, key)
	var r0 V
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(V)
	}
	return r0, ret.Bool(1)
}

func (_m *MockCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	_m.Called(ctx, key, value, ttl)
}

func (_m *MockCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	ret := _m.Called(ctx, keys)
	return ret.Error(0)
}

func (_m *MockCacheManager[K, V]) DeleteFunc(ctx context.Context, match func(key K) bool) int {
	ret := _m.Called(ctx, match)
	return ret.Int(0)
}

func (_m *MockCacheManager[K, V]) Flush(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockCacheManager[K, V]) Len() int {
	ret := _m.Called()
	return ret.Int(0)
}

type MockCacheManager_Get_Call[K comparable, V any] struct {
	*mock.Call
}

func (_e *MockCacheManager_Expecter[K, V]) Get(ctx interface{}, key interface{}) *MockCacheManager_Get_Call[K, V] {
	return &MockCacheManager_Get_Call[K, V]{Call: _e.mock.On("Get", ctx, key)}
}

func (_c *MockCacheManager_Get_Call[K, V]) Return(value V, found bool) *MockCacheManager_Get_Call[K, V] {
	_c.Call.Return(value, found)
	return _c
}

type MockCacheManager_Set_Call[K comparable, V any] struct {
	*mock.Call
}

func (_e *MockCacheManager_Expecter[K, V]) Set(ctx interface{}, key interface{}, value interface{}, ttl interface{}) *MockCacheManager_Set_Call[K, V] {
	return &MockCacheManager_Set_Call[K, V]{Call: _e.mock.On("Set", ctx, key, value, ttl)}
}

func (_c *MockCacheManager_Set_Call[K, V]) Return() *MockCacheManager_Set_Call[K, V] {
	_c.Call.Return()
	return _c
}

// NewMockCacheManager creates a mock that asserts its expectations on cleanup.
func NewMockCacheManager[K comparable, V any](t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCacheManager[K, V] {
	m := &MockCacheManager[K, V]{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
