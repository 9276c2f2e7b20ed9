package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/budgetkey/budgetkey-mcp-server/internal/logger"
)

// DatasetsResourceURI addresses the read-only dataset catalog resource
const DatasetsResourceURI = "budgetkey://datasets"

// ToolRegistry structure to handle tool registration
type ToolRegistry struct {
	mcpServer      *server.MCPServer
	datasetUseCase UseCaseProvider
	factory        *ToolTypeFactory
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(mcpServer *server.MCPServer, useCase UseCaseProvider) *ToolRegistry {
	return &ToolRegistry{
		mcpServer:      mcpServer,
		datasetUseCase: useCase,
		factory:        NewToolTypeFactory(useCase.ListDatasets(), useCase.DefaultPageSize()),
	}
}

// RegisterAll registers every gateway tool and the dataset catalog resource
// with the server
func (tr *ToolRegistry) RegisterAll() {
	names := make([]string, 0, len(tr.factory.GetAllToolTypes()))
	for _, toolType := range tr.factory.GetAllToolTypes() {
		tr.registerTool(toolType)
		names = append(names, toolType.GetName())
	}
	logger.Info("Registered tools: %s", strings.Join(names, ", "))

	tr.registerDatasetsResource()
}

// registerTool registers a single tool with the server
func (tr *ToolRegistry) registerTool(toolType ToolType) {
	tr.mcpServer.AddTool(toolType.CreateTool(), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolType.HandleRequest(ctx, request, tr.datasetUseCase)
	})
}

// registerDatasetsResource exposes the allow-list of datasets as a read-only
// resource, so clients can enumerate what the gateway will forward
func (tr *ToolRegistry) registerDatasetsResource() {
	resource := mcp.NewResource(
		DatasetsResourceURI,
		"available_datasets",
		mcp.WithResourceDescription("The datasets available through this server"),
		mcp.WithMIMEType("application/json"),
	)

	tr.mcpServer.AddResource(resource, tr.handleDatasetsResource)
	logger.Info("Registered resource: %s", DatasetsResourceURI)
}

// handleDatasetsResource serves the dataset catalog as JSON
func (tr *ToolRegistry) handleDatasetsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := json.Marshal(tr.datasetUseCase.ListDatasets())
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}
