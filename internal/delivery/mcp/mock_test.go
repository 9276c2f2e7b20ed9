package mcp

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/budgetkey/budgetkey-mcp-server/internal/domain"
)

// MockDatasetUseCase is a mock implementation of the dataset use case.
// Payload expectations must be set with typed json.RawMessage values so the
// return assertions hold for nil payloads too.
type MockDatasetUseCase struct {
	mock.Mock
}

// GetDatasetInfo mocks the GetDatasetInfo method
func (m *MockDatasetUseCase) GetDatasetInfo(ctx context.Context, dataset string) (json.RawMessage, error) {
	args := m.Called(ctx, dataset)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// SearchDataset mocks the SearchDataset method
func (m *MockDatasetUseCase) SearchDataset(ctx context.Context, dataset, q string) (json.RawMessage, error) {
	args := m.Called(ctx, dataset, q)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// QueryDataset mocks the QueryDataset method
func (m *MockDatasetUseCase) QueryDataset(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error) {
	args := m.Called(ctx, dataset, query, pageSize)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// ListDatasets mocks the ListDatasets method
func (m *MockDatasetUseCase) ListDatasets() []domain.Dataset {
	args := m.Called()
	return args.Get(0).([]domain.Dataset)
}

// DefaultPageSize mocks the DefaultPageSize method
func (m *MockDatasetUseCase) DefaultPageSize() int {
	args := m.Called()
	return args.Int(0)
}
