package budgetkey

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/budgetkey/budgetkey-mcp-server/pkg/logger"
)

const (
	// DefaultBaseURL is the production BudgetKey datastore endpoint
	DefaultBaseURL = "https://next.obudget.org"

	userAgent = "budgetkey-mcp-server/1.0"

	// Upstream error bodies are echoed into error messages; cap them so a
	// misbehaving upstream cannot flood the logs.
	maxErrorBodyBytes = 512
)

// APIError represents a non-2xx response from the BudgetKey API
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream API returned %s", e.Status)
	}
	return fmt.Sprintf("upstream API returned %s: %s", e.Status, e.Body)
}

// Config represents BudgetKey API client configuration
type Config struct {
	BaseURL string
	// Per-call timeouts: lookups (info, search) are expected to be fast,
	// SQL queries may run longer upstream.
	LookupTimeout time.Duration
	QueryTimeout  time.Duration
	// Connection pool settings
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	// HTTPClient overrides the pooled client built from the settings
	// above. Intended for tests and callers that manage their own pool.
	HTTPClient *http.Client
}

// SetDefaults sets default values for the configuration if they are not set
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.LookupTimeout == 0 {
		c.LookupTimeout = 30 * time.Second
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = 60 * time.Second
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
}

// Client represents a BudgetKey datastore API client
type Client interface {
	// Dataset operations
	DatasetInfo(ctx context.Context, dataset string) (json.RawMessage, error)
	SearchDataset(ctx context.Context, dataset, q string) (json.RawMessage, error)
	QueryDataset(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error)

	// Metadata
	BaseURL() string
}

// client is the concrete implementation of the Client interface
type client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new BudgetKey API client based on the provided configuration
func NewClient(config Config) (Client, error) {
	config.SetDefaults()
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing scheme or host", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// One shared pool for the process; per-call deadlines come from
		// the request context, not from http.Client.Timeout.
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	}

	return &client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// DatasetInfo fetches the schema and column description of a dataset
func (c *client) DatasetInfo(ctx context.Context, dataset string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/tables/%s/info", c.config.BaseURL, url.PathEscape(dataset))
	return c.get(ctx, endpoint, nil, c.config.LookupTimeout)
}

// SearchDataset performs a full-text search on a dataset
func (c *client) SearchDataset(ctx context.Context, dataset, q string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/tables/%s/search", c.config.BaseURL, url.PathEscape(dataset))
	params := url.Values{}
	params.Set("q", q)
	return c.get(ctx, endpoint, params, c.config.LookupTimeout)
}

// QueryDataset executes a SQL query against a dataset. The query string is
// forwarded verbatim; the upstream service is the authority on its validity.
func (c *client) QueryDataset(ctx context.Context, dataset, query string, pageSize int) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/tables/%s/query", c.config.BaseURL, url.PathEscape(dataset))
	params := url.Values{}
	params.Set("query", query)
	params.Set("page_size", strconv.Itoa(pageSize))
	return c.get(ctx, endpoint, params, c.config.QueryTimeout)
}

// BaseURL returns the configured upstream base URL
func (c *client) BaseURL() string {
	return c.config.BaseURL
}

// get issues a single upstream GET request and returns the raw JSON body,
// so callers can pass it through unmodified.
func (c *client) get(ctx context.Context, endpoint string, params url.Values, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logger.RequestLog(http.MethodGet, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach upstream API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	logger.ResponseLog(resp.StatusCode, len(body))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(body), maxErrorBodyBytes),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned invalid JSON (%d bytes)", len(body))
	}

	return json.RawMessage(body), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
