package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UseCaseProvider interface abstracts the gateway operations consumed by the
// plain HTTP surface
type UseCaseProvider interface {
	GetDatasetInfo(ctx context.Context, dataset string) (json.RawMessage, error)
	SearchDataset(ctx context.Context, dataset, q string) (json.RawMessage, error)
	QueryDataset(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error)
}

// EndpointHandler serves the gateway operations as plain HTTP POST endpoints,
// mirroring the tool surface for callers that do not speak MCP
type EndpointHandler struct {
	useCase UseCaseProvider
}

// NewEndpointHandler creates a new endpoint handler
func NewEndpointHandler(useCase UseCaseProvider) *EndpointHandler {
	return &EndpointHandler{useCase: useCase}
}

type infoRequest struct {
	Dataset string `json:"dataset" binding:"required"`
}

type searchRequest struct {
	Dataset string `json:"dataset" binding:"required"`
	Q       string `json:"q" binding:"required"`
}

type queryRequest struct {
	Dataset string `json:"dataset" binding:"required"`
	Query   string `json:"query" binding:"required"`
	// Zero means "not specified"; the use case applies the configured default.
	PageSize int `json:"page_size"`
}

// GetDatasetInfo handles POST /endpoints/get_dataset_info
func (h *EndpointHandler) GetDatasetInfo(c *gin.Context) {
	var req infoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	info, err := h.useCase.GetDatasetInfo(c.Request.Context(), req.Dataset)
	h.respond(c, info, err)
}

// SearchDataset handles POST /endpoints/search_dataset
func (h *EndpointHandler) SearchDataset(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	results, err := h.useCase.SearchDataset(c.Request.Context(), req.Dataset, req.Q)
	h.respond(c, results, err)
}

// QueryDataset handles POST /endpoints/query_dataset
func (h *EndpointHandler) QueryDataset(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.useCase.QueryDataset(c.Request.Context(), req.Dataset, req.Query, req.PageSize)
	h.respond(c, result, err)
}

// respond writes the normalized gateway result. Upstream JSON is passed
// through verbatim; gateway failures become a 200 with an {"error": ...}
// body, the same value an MCP tool caller sees.
func (h *EndpointHandler) respond(c *gin.Context, payload json.RawMessage, err error) {
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	c.Data(http.StatusOK, "application/json", payload)
}
