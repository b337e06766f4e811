package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tom1779/NASAHackathon2025/apimodels"
	"github.com/Tom1779/NASAHackathon2025/internal/analyzer"
	"github.com/Tom1779/NASAHackathon2025/internal/config"
	"github.com/Tom1779/NASAHackathon2025/internal/llm"
)

func newTestServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()

	var upstreamURL string
	if upstream != nil {
		us := httptest.NewServer(upstream)
		t.Cleanup(us.Close)
		upstreamURL = us.URL
	}

	cfg := config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		OpenRouter: config.OpenRouterConfig{
			APIKey:        "test-key",
			Endpoint:      upstreamURL,
			AppURL:        "http://localhost:3000",
			Timeout:       5 * time.Second,
			DefaultModel:  "default-model",
			AdvancedModel: "advanced-model",
			FallbackModel: "fallback-model",
			MaxTokens:     2500,
			Temperature:   0.7,
		},
	}

	a := analyzer.New(&cfg.OpenRouter, llm.NewClient(&cfg.OpenRouter))
	srv := httptest.NewServer(New(cfg, a).router)
	t.Cleanup(srv.Close)
	return srv
}

func postAnalyze(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandleRoot(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var info apimodels.InfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "Asteroid Composition Analysis API", info.Message)
	assert.Equal(t, "0.1.0", info.Version)
	assert.Contains(t, info.Endpoints, "/analyze")
	assert.Contains(t, info.Endpoints, "/health")
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var health apimodels.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.OpenRouterConfigured)
}

func TestAnalyzeBufferedEndToEnd(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"X","choices":[{"message":{"content":"Olivine-rich"}}]}`))
	})

	resp := postAnalyze(t, srv, `{"asteroid":{"name":"Bennu","id":"101955"},"use_streaming":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result apimodels.AnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "Bennu", result.AsteroidName)
	assert.Equal(t, "101955", result.AsteroidID)
	assert.Equal(t, "Olivine-rich", result.Analysis)
	assert.Equal(t, "X", result.ModelUsed)
}

func TestAnalyzeUpstreamStatusSurfaced(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})

	resp := postAnalyze(t, srv, `{"asteroid":{"name":"Bennu","id":"101955"},"use_streaming":false}`)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "OpenRouter API error: rate limited")
}

func TestAnalyzeStreamingEndToEnd(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		w.Write([]byte(`data: {"choices":[{"del`))
		flusher.Flush()
		w.Write([]byte("ta\":{\"content\":\"Fe\"}}]}\ndata: [DONE]\n"))
		flusher.Flush()
	})

	// use_streaming defaults to true
	resp := postAnalyze(t, srv, `{"asteroid":{"name":"Bennu","id":"101955"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "data: {\"content\":\"Fe\"}\n\ndata: [DONE]\n\n", string(body))
}

func TestAnalyzeStreamingUpstreamError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})

	resp := postAnalyze(t, srv, `{"asteroid":{"name":"Bennu","id":"101955"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, "stream errors surface in-band")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"error":"OpenRouter API error (429): rate limited"`)
	assert.True(t, strings.HasSuffix(string(body), "data: [DONE]\n\n"))
}

func TestAnalyzeRejectsInvalidRequests(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postAnalyze(t, srv, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postAnalyze(t, srv, `{"asteroid":{"name":"Bennu"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id is required")
}

func TestAnalyzeMissingAPIKey(t *testing.T) {
	// Build a server without a credential configured.
	cfg := config.Config{
		Server:     config.ServerConfig{Host: "127.0.0.1", Port: "0", AllowedOrigins: []string{"*"}},
		OpenRouter: config.OpenRouterConfig{},
	}
	a := analyzer.New(&cfg.OpenRouter, llm.NewClient(&cfg.OpenRouter))
	bare := httptest.NewServer(New(cfg, a).router)
	defer bare.Close()

	resp, err := http.Post(bare.URL+"/analyze", "application/json",
		strings.NewReader(`{"asteroid":{"name":"Bennu","id":"101955"},"use_streaming":false}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "OpenRouter API key is not configured.")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
