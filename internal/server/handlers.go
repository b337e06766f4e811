package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Tom1779/NASAHackathon2025/apimodels"
	"github.com/Tom1779/NASAHackathon2025/internal/config"
	"github.com/Tom1779/NASAHackathon2025/internal/llm"
)

const apiVersion = "0.1.0"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, apimodels.InfoResponse{
		Message: "Asteroid Composition Analysis API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"/analyze": "POST - Analyze asteroid composition",
			"/health":  "GET - Health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, apimodels.HealthResponse{
		Status:               "healthy",
		OpenRouterConfigured: s.cfg.OpenRouter.Configured(),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Asteroid.Name == "" || req.Asteroid.ID == "" {
		http.Error(w, "asteroid name and id are required", http.StatusBadRequest)
		return
	}

	slog.Debug("received analysis request", "asteroid", req.Asteroid.Name, "streaming", req.Streaming())

	if req.Streaming() {
		s.streamAnalysis(w, r, req)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	writeJSON(w, result)
}

// streamAnalysis relays the normalized event sequence to the caller as a
// text/event-stream, flushing per event. A client disconnect cancels the
// request context, which releases the upstream connection.
func (s *Server) streamAnalysis(w http.ResponseWriter, r *http.Request, req apimodels.AnalysisRequest) {
	events, err := s.analyzer.AnalyzeStream(r.Context(), req)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range events {
		if _, err := io.WriteString(w, ev.Frame()); err != nil {
			slog.Warn("client disconnected mid-stream", "error", err)
			return
		}
		flusher.Flush()
	}
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	slog.Error("analysis request failed", "error", err)

	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, config.ErrMissingAPIKey):
		http.Error(w, "OpenRouter API key is not configured.", http.StatusInternalServerError)
	case errors.As(err, &statusErr):
		http.Error(w, fmt.Sprintf("OpenRouter API error: %s", statusErr.Body), statusErr.Code)
	default:
		http.Error(w, fmt.Sprintf("An unexpected error occurred: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
