package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/budgetkey/budgetkey-mcp-server/internal/config"
	httpdelivery "github.com/budgetkey/budgetkey-mcp-server/internal/delivery/http"
	mcpdelivery "github.com/budgetkey/budgetkey-mcp-server/internal/delivery/mcp"
	"github.com/budgetkey/budgetkey-mcp-server/internal/domain"
	"github.com/budgetkey/budgetkey-mcp-server/internal/logger"
	"github.com/budgetkey/budgetkey-mcp-server/internal/repository"
	"github.com/budgetkey/budgetkey-mcp-server/internal/usecase"
	"github.com/budgetkey/budgetkey-mcp-server/pkg/budgetkey"
)

// serverVersion is reported to MCP clients during initialization
const serverVersion = "1.0.0"

func main() {
	// Parse command line flags
	transportMode := flag.String("t", "", "Transport mode (stdio or http)")
	port := flag.Int("port", 0, "Server port")
	flag.Parse()

	// Load an optional .env file before reading the environment; running
	// without one is the normal deployment case.
	_ = godotenv.Load()

	// Load configuration
	cfg := config.LoadConfig()

	// Override config with command line flags if provided
	if *transportMode != "" {
		cfg.TransportMode = *transportMode
	}
	if *port != 0 {
		cfg.ServerPort = *port
	}

	// Initialize logger
	logger.Initialize(cfg.LogLevel)

	mcpServer, router, err := buildServer(cfg)
	if err != nil {
		logger.Error("Failed to build server: %v", err)
		os.Exit(1)
	}

	switch cfg.TransportMode {
	case "stdio":
		logger.Info("Starting BudgetKey MCP server with stdio transport")
		if err := mcpServer.ServeStdio(); err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	case "http":
		logger.Info("Starting BudgetKey MCP server with http transport on port %d", cfg.ServerPort)
		startHTTPServer(cfg, router)
	default:
		logger.Error("Unknown transport mode: %s", cfg.TransportMode)
		os.Exit(1)
	}
}

// buildServer wires the gateway: dataset catalog → API client → repository →
// use case → MCP server and HTTP router.
func buildServer(cfg *config.Config) (*mcpdelivery.Server, http.Handler, error) {
	catalog, err := domain.DefaultCatalog()
	if err != nil {
		return nil, nil, err
	}

	client, err := budgetkey.NewClient(budgetkey.Config{
		BaseURL:       cfg.API.BaseURL,
		LookupTimeout: cfg.API.LookupTimeout,
		QueryTimeout:  cfg.API.QueryTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewBudgetAPIRepository(client)
	datasetUseCase := usecase.NewDatasetUseCase(catalog, repo, cfg.API.DefaultPageSize)

	mcpServer := mcpdelivery.NewServer(serverVersion, datasetUseCase)
	router := httpdelivery.NewRouter(datasetUseCase, mcpServer.Handler())

	logger.Info("Gateway configured for %s (%d datasets, default page size %d)",
		client.BaseURL(), len(catalog.Datasets()), datasetUseCase.DefaultPageSize())

	return mcpServer, router, nil
}

// startHTTPServer serves MCP, the POST endpoints and the health probes on a
// single listener until interrupted.
func startHTTPServer(cfg *config.Config, handler http.Handler) {
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server listening on %s (MCP endpoint at /mcp)", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	// Shutdown server gracefully
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}

	logger.Info("Server stopped")
}
