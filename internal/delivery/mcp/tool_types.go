package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/budgetkey/budgetkey-mcp-server/internal/domain"
)

// ToolType interface defines the structure for the gateway's dataset tools
type ToolType interface {
	// GetName returns the name the tool is registered under
	GetName() string

	// GetDescription returns a description for this tool type
	GetDescription() string

	// CreateTool declares the tool and its argument schema
	CreateTool() mcp.Tool

	// HandleRequest handles tool requests for this tool type
	HandleRequest(ctx context.Context, request mcp.CallToolRequest, useCase UseCaseProvider) (*mcp.CallToolResult, error)
}

// UseCaseProvider interface abstracts the gateway operations
type UseCaseProvider interface {
	GetDatasetInfo(ctx context.Context, dataset string) (json.RawMessage, error)
	SearchDataset(ctx context.Context, dataset, q string) (json.RawMessage, error)
	QueryDataset(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error)
	ListDatasets() []domain.Dataset
	DefaultPageSize() int
}

// BaseToolType provides common functionality for tool types
type BaseToolType struct {
	name        string
	description string
}

// GetName returns the name of the tool type
func (b *BaseToolType) GetName() string {
	return b.name
}

// GetDescription returns a description for the tool type
func (b *BaseToolType) GetDescription() string {
	return b.description
}

//------------------------------------------------------------------------------
// DatasetInfoTool implementation
//------------------------------------------------------------------------------

// DatasetInfoTool fetches the schema and column description of a dataset
type DatasetInfoTool struct {
	BaseToolType
	datasets []domain.Dataset
}

// NewDatasetInfoTool creates a new dataset info tool type
func NewDatasetInfoTool(datasets []domain.Dataset) *DatasetInfoTool {
	return &DatasetInfoTool{
		BaseToolType: BaseToolType{
			name:        "get_dataset_info",
			description: datasetInfoDescription,
		},
		datasets: datasets,
	}
}

// CreateTool creates the dataset info tool
func (t *DatasetInfoTool) CreateTool() mcp.Tool {
	return mcp.NewTool(
		t.name,
		mcp.WithDescription(t.description),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("ID of the dataset to get information for. "+datasetArgMenu(t.datasets)),
		),
	)
}

// HandleRequest handles dataset info requests
func (t *DatasetInfoTool) HandleRequest(ctx context.Context, request mcp.CallToolRequest, useCase UseCaseProvider) (*mcp.CallToolResult, error) {
	dataset, err := request.RequireString("dataset")
	if err != nil {
		return NewErrorResult(err), nil
	}

	info, err := useCase.GetDatasetInfo(ctx, dataset)
	return FormatResponse(info, err)
}

//------------------------------------------------------------------------------
// DatasetSearchTool implementation
//------------------------------------------------------------------------------

// DatasetSearchTool performs full-text search on a dataset
type DatasetSearchTool struct {
	BaseToolType
	datasets []domain.Dataset
}

// NewDatasetSearchTool creates a new dataset search tool type
func NewDatasetSearchTool(datasets []domain.Dataset) *DatasetSearchTool {
	return &DatasetSearchTool{
		BaseToolType: BaseToolType{
			name:        "search_dataset",
			description: datasetSearchDescription,
		},
		datasets: datasets,
	}
}

// CreateTool creates the dataset search tool
func (t *DatasetSearchTool) CreateTool() mcp.Tool {
	return mcp.NewTool(
		t.name,
		mcp.WithDescription(t.description),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("ID of the dataset to search. "+datasetArgMenu(t.datasets)),
		),
		mcp.WithString("q",
			mcp.Required(),
			mcp.Description("Free-text search query (organization name, keyword, description, etc.)"),
		),
	)
}

// HandleRequest handles dataset search requests
func (t *DatasetSearchTool) HandleRequest(ctx context.Context, request mcp.CallToolRequest, useCase UseCaseProvider) (*mcp.CallToolResult, error) {
	dataset, err := request.RequireString("dataset")
	if err != nil {
		return NewErrorResult(err), nil
	}
	q, err := request.RequireString("q")
	if err != nil {
		return NewErrorResult(err), nil
	}

	results, err := useCase.SearchDataset(ctx, dataset, q)
	return FormatResponse(results, err)
}

//------------------------------------------------------------------------------
// DatasetQueryTool implementation
//------------------------------------------------------------------------------

// DatasetQueryTool executes SQL queries against a dataset. The SQL text is
// forwarded verbatim; the upstream service is the authority on its validity.
type DatasetQueryTool struct {
	BaseToolType
	datasets        []domain.Dataset
	defaultPageSize int
}

// NewDatasetQueryTool creates a new dataset query tool type
func NewDatasetQueryTool(datasets []domain.Dataset, defaultPageSize int) *DatasetQueryTool {
	return &DatasetQueryTool{
		BaseToolType: BaseToolType{
			name:        "query_dataset",
			description: datasetQueryDescription,
		},
		datasets:        datasets,
		defaultPageSize: defaultPageSize,
	}
}

// CreateTool creates the dataset query tool
func (t *DatasetQueryTool) CreateTool() mcp.Tool {
	return mcp.NewTool(
		t.name,
		mcp.WithDescription(t.description),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("ID of the dataset to query. "+datasetArgMenu(t.datasets)),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("PostgreSQL-compatible SQL query to execute. "+
				"Example: \"SELECT year, code, title, net_allocated, net_executed, item_url "+
				"FROM budget_items_data WHERE year = 2025 ORDER BY net_allocated DESC LIMIT 10\""),
		),
		mcp.WithNumber("page_size",
			mcp.Description(fmt.Sprintf("Number of rows to return (default: %d)", t.defaultPageSize)),
		),
	)
}

// HandleRequest handles dataset query requests
func (t *DatasetQueryTool) HandleRequest(ctx context.Context, request mcp.CallToolRequest, useCase UseCaseProvider) (*mcp.CallToolResult, error) {
	dataset, err := request.RequireString("dataset")
	if err != nil {
		return NewErrorResult(err), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return NewErrorResult(err), nil
	}
	// Zero means "not specified"; the use case applies the configured default.
	pageSize := request.GetInt("page_size", 0)

	result, err := useCase.QueryDataset(ctx, dataset, query, pageSize)
	return FormatResponse(result, err)
}

//------------------------------------------------------------------------------
// ToolTypeFactory provides a factory for creating tool types
//------------------------------------------------------------------------------

// ToolTypeFactory creates and manages the gateway's tool types
type ToolTypeFactory struct {
	order     []string
	toolTypes map[string]ToolType
}

// NewToolTypeFactory creates a new tool type factory with all gateway tools
func NewToolTypeFactory(datasets []domain.Dataset, defaultPageSize int) *ToolTypeFactory {
	factory := &ToolTypeFactory{
		toolTypes: make(map[string]ToolType),
	}

	factory.Register(NewDatasetInfoTool(datasets))
	factory.Register(NewDatasetSearchTool(datasets))
	factory.Register(NewDatasetQueryTool(datasets, defaultPageSize))

	return factory
}

// Register adds a tool type to the factory
func (f *ToolTypeFactory) Register(toolType ToolType) {
	name := toolType.GetName()
	if _, exists := f.toolTypes[name]; !exists {
		f.order = append(f.order, name)
	}
	f.toolTypes[name] = toolType
}

// GetToolType returns a tool type by name
func (f *ToolTypeFactory) GetToolType(name string) (ToolType, bool) {
	toolType, ok := f.toolTypes[name]
	return toolType, ok
}

// GetAllToolTypes returns all registered tool types in registration order
func (f *ToolTypeFactory) GetAllToolTypes() []ToolType {
	types := make([]ToolType, 0, len(f.order))
	for _, name := range f.order {
		types = append(types, f.toolTypes[name])
	}
	return types
}
