package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetkey/budgetkey-mcp-server/internal/logger"
)

// NewRouter builds the gin engine owning the process's HTTP surface: health
// probes, the /endpoints POST variant of the gateway operations, and the MCP
// streamable HTTP transport mounted at /mcp.
func NewRouter(useCase UseCaseProvider, mcpHandler http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.CustomRecovery(handlePanic))

	// Both paths answer liveness probes; the original server exposed the
	// latter, gin deployments conventionally probe the former.
	router.GET("/health", handleHealth)
	router.GET("/mcp/health", handleHealth)

	handler := NewEndpointHandler(useCase)
	endpoints := router.Group("/endpoints")
	{
		endpoints.POST("/get_dataset_info", handler.GetDatasetInfo)
		endpoints.POST("/search_dataset", handler.SearchDataset)
		endpoints.POST("/query_dataset", handler.QueryDataset)
	}

	if mcpHandler != nil {
		router.Any("/mcp", gin.WrapH(mcpHandler))
	}

	return router
}

// handleHealth reports liveness for orchestration probes
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handlePanic converts an unexpected panic into a 500 with an error JSON
// body instead of an empty reply
func handlePanic(c *gin.Context, recovered interface{}) {
	logger.Error("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": fmt.Sprintf("internal server error: %v", recovered),
	})
}
