package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultPageSize bounds query results when the caller does not ask for a
// specific page size.
const DefaultPageSize = 50

// Validation errors shared by every gateway operation
var (
	ErrEmptyDataset      = errors.New("dataset must not be empty")
	ErrDatasetNotAllowed = errors.New("dataset is not in the allowed set")
	ErrEmptyQuery        = errors.New("query must not be empty")
)

// Dataset describes one table of the upstream budget API
type Dataset struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Catalog is the fixed set of datasets the gateway may forward requests for.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	datasets []Dataset
	byID     map[string]Dataset
}

// NewCatalog creates a catalog from a list of datasets
func NewCatalog(datasets []Dataset) (*Catalog, error) {
	if len(datasets) == 0 {
		return nil, errors.New("catalog must contain at least one dataset")
	}

	byID := make(map[string]Dataset, len(datasets))
	for _, d := range datasets {
		if d.ID == "" {
			return nil, errors.New("catalog dataset with empty id")
		}
		if _, exists := byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate dataset id %q in catalog", d.ID)
		}
		byID[d.ID] = d
	}

	return &Catalog{datasets: datasets, byID: byID}, nil
}

// Contains reports whether the dataset id belongs to the catalog
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Datasets returns the datasets in declaration order
func (c *Catalog) Datasets() []Dataset {
	out := make([]Dataset, len(c.datasets))
	copy(out, c.datasets)
	return out
}

// IDs returns the dataset identifiers in declaration order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.datasets))
	for i, d := range c.datasets {
		ids[i] = d.ID
	}
	return ids
}

// DatasetRepository retrieves dataset data from the upstream budget API
type DatasetRepository interface {
	GetInfo(ctx context.Context, dataset string) (json.RawMessage, error)
	Search(ctx context.Context, dataset, q string) (json.RawMessage, error)
	Query(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error)
}
