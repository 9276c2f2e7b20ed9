package mcp

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"
)

// serverName identifies this server to MCP clients during initialization
const serverName = "BudgetKey"

// Server bundles the MCP protocol server with its transports. The stdio
// transport runs the whole process; the HTTP transport is a handler the
// caller mounts into its own router.
type Server struct {
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

// NewServer creates the MCP server, registers the gateway tools and the
// dataset catalog resource, and prepares the streamable HTTP transport.
func NewServer(version string, useCase UseCaseProvider) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithRecovery(),
		server.WithInstructions(BuildInstructions(useCase.ListDatasets())),
	)

	registry := NewToolRegistry(mcpServer, useCase)
	registry.RegisterAll()

	return &Server{
		mcpServer:  mcpServer,
		httpServer: server.NewStreamableHTTPServer(mcpServer),
	}
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Handler returns the streamable HTTP transport for mounting into a router
func (s *Server) Handler() http.Handler {
	return s.httpServer
}
