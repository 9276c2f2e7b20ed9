package repository

import (
	"context"
	"encoding/json"

	"github.com/budgetkey/budgetkey-mcp-server/pkg/budgetkey"
)

// BudgetAPIRepository implements domain.DatasetRepository on top of the
// BudgetKey REST API client
type BudgetAPIRepository struct {
	client budgetkey.Client
}

// NewBudgetAPIRepository creates a new repository backed by the given API client
func NewBudgetAPIRepository(client budgetkey.Client) *BudgetAPIRepository {
	return &BudgetAPIRepository{client: client}
}

// GetInfo retrieves the schema and column description of a dataset
func (r *BudgetAPIRepository) GetInfo(ctx context.Context, dataset string) (json.RawMessage, error) {
	return r.client.DatasetInfo(ctx, dataset)
}

// Search performs a full-text search on a dataset
func (r *BudgetAPIRepository) Search(ctx context.Context, dataset, q string) (json.RawMessage, error) {
	return r.client.SearchDataset(ctx, dataset, q)
}

// Query executes a SQL query against a dataset
func (r *BudgetAPIRepository) Query(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error) {
	return r.client.QueryDataset(ctx, dataset, query, pageSize)
}
