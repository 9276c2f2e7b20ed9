package budgetkey

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSetDefaults(t *testing.T) {
	config := Config{}
	config.SetDefaults()

	assert.Equal(t, DefaultBaseURL, config.BaseURL)
	assert.Equal(t, 30*time.Second, config.LookupTimeout)
	assert.Equal(t, 60*time.Second, config.QueryTimeout)
	assert.Equal(t, 100, config.MaxIdleConns)
	assert.Equal(t, 10, config.MaxIdleConnsPerHost)
	assert.Equal(t, 90*time.Second, config.IdleConnTimeout)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		expectErr bool
	}{
		{
			name:      "default config",
			config:    Config{},
			expectErr: false,
		},
		{
			name:      "explicit base URL",
			config:    Config{BaseURL: "http://localhost:9000"},
			expectErr: false,
		},
		{
			name:      "unparseable base URL",
			config:    Config{BaseURL: "://nope"},
			expectErr: true,
		},
		{
			name:      "base URL without scheme",
			config:    Config{BaseURL: "next.obudget.org"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.config)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://localhost:9000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", c.BaseURL())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return c, srv
}

func TestDatasetInfoPassThrough(t *testing.T) {
	payload := `{"name":"contracts_data","columns":[{"name":"year","type":"integer"}]}`
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tables/contracts_data/info", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})

	body, err := c.DatasetInfo(context.Background(), "contracts_data")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(body))
}

func TestSearchDatasetEncodesQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tables/entities_data/search", r.URL.Path)
		assert.Equal(t, "עיריית תל אביב", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"search_results":[]}`))
	})

	body, err := c.SearchDataset(context.Background(), "entities_data", "עיריית תל אביב")
	require.NoError(t, err)
	assert.JSONEq(t, `{"search_results":[]}`, string(body))
}

func TestQueryDatasetParams(t *testing.T) {
	sqlQuery := "SELECT year, title, net_allocated FROM budget_items_data WHERE year = 2025 LIMIT 10"
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tables/budget_items_data/query", r.URL.Path)
		assert.Equal(t, sqlQuery, r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"rows":[],"download_url":"http://example.com/dl"}`))
	})

	body, err := c.QueryDataset(context.Background(), "budget_items_data", sqlQuery, 10)
	require.NoError(t, err)
	assert.Contains(t, string(body), "download_url")
}

func TestUpstreamErrorStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := c.DatasetInfo(context.Background(), "entities_data")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "503")
	assert.Contains(t, apiErr.Error(), "service unavailable")
}

func TestInvalidJSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.SearchDataset(context.Background(), "entities_data", "tel aviv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, LookupTimeout: 30 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.DatasetInfo(context.Background(), "entities_data")
	assert.Error(t, err)
}

func TestCallerContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.DatasetInfo(ctx, "entities_data")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
