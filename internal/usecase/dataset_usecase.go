package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetkey/budgetkey-mcp-server/internal/domain"
	"github.com/budgetkey/budgetkey-mcp-server/internal/logger"
)

// DatasetUseCase defines operations for working with BudgetKey datasets
type DatasetUseCase struct {
	catalog         *domain.Catalog
	repo            domain.DatasetRepository
	defaultPageSize int
}

// NewDatasetUseCase creates a new dataset use case
func NewDatasetUseCase(catalog *domain.Catalog, repo domain.DatasetRepository, defaultPageSize int) *DatasetUseCase {
	if defaultPageSize <= 0 {
		defaultPageSize = domain.DefaultPageSize
	}
	return &DatasetUseCase{
		catalog:         catalog,
		repo:            repo,
		defaultPageSize: defaultPageSize,
	}
}

// ListDatasets returns the datasets requests may be forwarded for
func (uc *DatasetUseCase) ListDatasets() []domain.Dataset {
	return uc.catalog.Datasets()
}

// DefaultPageSize returns the page size applied when a query does not specify one
func (uc *DatasetUseCase) DefaultPageSize() int {
	return uc.defaultPageSize
}

// GetDatasetInfo returns the schema and column description of a dataset
func (uc *DatasetUseCase) GetDatasetInfo(ctx context.Context, dataset string) (json.RawMessage, error) {
	if err := uc.validateDataset(dataset); err != nil {
		return nil, err
	}

	callID := uuid.NewString()
	logger.Info("[%s] fetching info for dataset %s", callID, dataset)

	info, err := uc.repo.GetInfo(ctx, dataset)
	if err != nil {
		logger.Error("[%s] dataset info failed: %v", callID, err)
		return nil, fmt.Errorf("failed to get dataset info: %w", err)
	}

	return info, nil
}

// SearchDataset performs a full-text search on a dataset and returns the
// matching records verbatim
func (uc *DatasetUseCase) SearchDataset(ctx context.Context, dataset, q string) (json.RawMessage, error) {
	if err := uc.validateDataset(dataset); err != nil {
		return nil, err
	}
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}

	callID := uuid.NewString()
	logger.Info("[%s] searching dataset %s for %q", callID, dataset, q)

	results, err := uc.repo.Search(ctx, dataset, q)
	if err != nil {
		logger.Error("[%s] dataset search failed: %v", callID, err)
		return nil, fmt.Errorf("failed to search dataset: %w", err)
	}

	return results, nil
}

// QueryDataset executes a SQL query against a dataset. The query text is
// forwarded verbatim; a non-positive page size falls back to the configured
// default.
func (uc *DatasetUseCase) QueryDataset(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error) {
	if err := uc.validateDataset(dataset); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if pageSize <= 0 {
		pageSize = uc.defaultPageSize
	}

	callID := uuid.NewString()
	logger.Info("[%s] querying dataset %s (page_size=%d): %s", callID, dataset, pageSize, shortQuery(query))

	result, err := uc.repo.Query(ctx, dataset, query, pageSize)
	if err != nil {
		logger.Error("[%s] dataset query failed: %v", callID, err)
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}

	return result, nil
}

// validateDataset rejects identifiers outside the allowed set before any
// network call is issued
func (uc *DatasetUseCase) validateDataset(dataset string) error {
	if dataset == "" {
		return domain.ErrEmptyDataset
	}
	if !uc.catalog.Contains(dataset) {
		return fmt.Errorf("%w: %q (allowed datasets: %s)",
			domain.ErrDatasetNotAllowed, dataset, strings.Join(uc.catalog.IDs(), ", "))
	}
	return nil
}

// shortQuery trims long SQL text for the request log
func shortQuery(query string) string {
	const maxLogQueryLen = 100
	if len(query) <= maxLogQueryLen {
		return query
	}
	return query[:maxLogQueryLen] + "..."
}
