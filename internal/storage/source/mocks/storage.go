// Package mocks provides mock implementations of source interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of source.Storage.
type MockStorage struct {
	mock.Mock
}

// Read records the call and returns the configured content.
func (m *MockStorage) Read(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// Exists records the call and returns the configured answer.
func (m *MockStorage) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}
