package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/njchilds90/gojets"
	"github.com/njchilds90/gojets/internal/config"
)

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h, err := newServer(cfg, zaptest.NewLogger(t), prometheus.NewRegistry())
	require.NoError(t, err)
	return h
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, gojets.ToolResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body)))
	var resp gojets.ToolResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestToolCall(t *testing.T) {
	h := newTestServer(t, nil)
	rec, resp := post(t, h, `{"tool":"groebner","params":{"vars":["x","y"],"polys":["x - y","x^2 + y^2 - 1"],"order":"lex"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "y^2 - 1/2, x - y", resp.String)

	_, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	assert.NoError(t, err)
}

func TestToolCallErrorKind(t *testing.T) {
	h := newTestServer(t, nil)
	_, resp := post(t, h, `{"tool":"hasse_schmidt","params":{"vars":["x"],"polys":["x^2"],"n":3,"trun":2}}`)
	assert.Equal(t, "DimensionMismatch", resp.Kind)
	assert.NotEmpty(t, resp.Error)
}

func TestToolCallTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.Timeout = "1ns"
	h := newTestServer(t, cfg)
	_, resp := post(t, h, `{"tool":"groebner","params":{"vars":["x","y"],"polys":["x - y"]}}`)
	assert.Equal(t, "EngineFailure", resp.Kind)
}

func TestToolCallGeneratorCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Jets.MaxGenerators = 4
	h := newTestServer(t, cfg)
	_, resp := post(t, h, `{"tool":"jet_ring","params":{"vars":["x","y"],"trun":3}}`)
	assert.Equal(t, "ConfigurationError", resp.Kind)

	_, resp = post(t, h, `{"tool":"jet_ring","params":{"vars":["x","y"],"trun":2}}`)
	assert.Empty(t, resp.Error)
}

func TestToolCallRejectsBadRequests(t *testing.T) {
	h := newTestServer(t, nil)
	tests := map[string]string{
		"malformed":     `{"tool":`,
		"unknown field": `{"tool":"jet_ring","extra":1}`,
		"trailing data": `{"tool":"jet_ring"} {}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec, _ := post(t, h, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tool", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestToolCallBodyLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxBodyBytes = 16
	h := newTestServer(t, cfg)
	rec, _ := post(t, h, `{"tool":"jet_ring","params":{"vars":["x"],"trun":2}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchemaAndHealth(t *testing.T) {
	h := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Contains(t, rec.Body.String(), `"general_component"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, nil)
	post(t, h, `{"tool":"groebner","params":{"vars":["x","y"],"polys":["x^2 - y","x*y - 1"]}}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gojets_groebner_runs_total")
	assert.Contains(t, rec.Body.String(), "gojets_groebner_duration_seconds")
}

func TestNewServerRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := newServer(config.DefaultConfig(), zaptest.NewLogger(t), reg)
	require.NoError(t, err)
	_, err = newServer(config.DefaultConfig(), zaptest.NewLogger(t), reg)
	assert.Error(t, err)
}
