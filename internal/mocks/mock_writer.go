package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/plenum/internal/models"
)

// MockWriter mocks repository.Writer.
type MockWriter struct {
	mock.Mock
}

type MockWriter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockWriter) EXPECT() *MockWriter_Expecter {
	return &MockWriter_Expecter{mock: &_m.Mock}
}

func (_m *MockWriter) Create(ctx context.Context, rec models.Record) (models.Identifiable, error) {
	ret := _m.Called(ctx, rec)
	var r0 models.Identifiable
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(models.Identifiable)
	}
	return r0, ret.Error(1)
}

func (_m *MockWriter) Update(ctx context.Context, collection string, id int, patch map[string]any) error {
	ret := _m.Called(ctx, collection, id, patch)
	return ret.Error(0)
}

func (_m *MockWriter) Delete(ctx context.Context, collection string, id int) error {
	ret := _m.Called(ctx, collection, id)
	return ret.Error(0)
}

type MockWriter_Create_Call struct {
	*mock.Call
}

func (_e *MockWriter_Expecter) Create(ctx interface{}, rec interface{}) *MockWriter_Create_Call {
	return &MockWriter_Create_Call{Call: _e.mock.On("Create", ctx, rec)}
}

func (_c *MockWriter_Create_Call) Return(id models.Identifiable, err error) *MockWriter_Create_Call {
	_c.Call.Return(id, err)
	return _c
}

type MockWriter_Update_Call struct {
	*mock.Call
}

func (_e *MockWriter_Expecter) Update(ctx interface{}, collection interface{}, id interface{}, patch interface{}) *MockWriter_Update_Call {
	return &MockWriter_Update_Call{Call: _e.mock.On("Update", ctx, collection, id, patch)}
}

func (_c *MockWriter_Update_Call) Return(err error) *MockWriter_Update_Call {
	_c.Call.Return(err)
	return _c
}

type MockWriter_Delete_Call struct {
	*mock.Call
}

func (_e *MockWriter_Expecter) Delete(ctx interface{}, collection interface{}, id interface{}) *MockWriter_Delete_Call {
	return &MockWriter_Delete_Call{Call: _e.mock.On("Delete", ctx, collection, id)}
}

func (_c *MockWriter_Delete_Call) Return(err error) *MockWriter_Delete_Call {
	_c.Call.Return(err)
	return _c
}

// NewMockWriter creates a mock that asserts its expectations on cleanup.
func NewMockWriter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWriter {
	m := &MockWriter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
