package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// ErrorBody is the normalized payload returned for any failed gateway call
type ErrorBody struct {
	Error string `json:"error"`
}

// NewErrorResult converts an error into the normalized {"error": ...} tool
// result. The protocol call itself still succeeds, so the calling agent can
// inspect every failure the same way.
func NewErrorResult(err error) *mcp.CallToolResult {
	body, _ := json.Marshal(ErrorBody{Error: err.Error()})
	return mcp.NewToolResultText(string(body))
}

// FormatResponse converts a gateway result into an MCP tool result. Upstream
// JSON is passed through unmodified; failures of any kind are normalized into
// an {"error": ...} payload and never raised past the gateway boundary.
func FormatResponse(payload json.RawMessage, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return NewErrorResult(err), nil
	}

	// Avoid a null result when the upstream body is empty
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	return mcp.NewToolResultText(string(payload)), nil
}
