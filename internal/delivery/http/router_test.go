package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthRoutes(t *testing.T) {
	router := NewRouter(new(MockDatasetUseCase), nil)

	for _, path := range []string{"/health", "/mcp/health"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
		})
	}
}

func TestMCPMount(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0"}`))
	})

	router := NewRouter(new(MockDatasetUseCase), mcpHandler)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jsonrpc":"2.0"}`, rec.Body.String())
}

func TestMCPMountOptional(t *testing.T) {
	// stdio deployments build the router without an MCP handler
	router := NewRouter(new(MockDatasetUseCase), nil)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPanicYieldsErrorJSON(t *testing.T) {
	mockUseCase := new(MockDatasetUseCase)
	mockUseCase.On("GetDatasetInfo", mock.Anything, "contracts_data").
		Run(func(args mock.Arguments) { panic("boom") }).
		Return(json.RawMessage(nil), nil).Once()

	router := NewRouter(mockUseCase, nil)
	rec := postJSON(t, router, "/endpoints/get_dataset_info", `{"dataset":"contracts_data"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "internal server error")
}

func TestUnknownRoute(t *testing.T) {
	router := NewRouter(new(MockDatasetUseCase), nil)

	req := httptest.NewRequest(http.MethodGet, "/endpoints/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
