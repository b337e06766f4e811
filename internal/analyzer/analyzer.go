package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tom1779/NASAHackathon2025/apimodels"
	"github.com/Tom1779/NASAHackathon2025/internal/config"
	"github.com/Tom1779/NASAHackathon2025/internal/llm"
	"github.com/Tom1779/NASAHackathon2025/internal/metrics"
	"github.com/Tom1779/NASAHackathon2025/internal/prompt"
)

// Analyzer orchestrates one composition analysis per call: build the prompt,
// assemble the payload, invoke OpenRouter in the requested delivery mode.
type Analyzer struct {
	cfg    *config.OpenRouterConfig
	client *llm.Client
}

func New(cfg *config.OpenRouterConfig, client *llm.Client) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		client: client,
	}
}

func (a *Analyzer) preparePayload(req apimodels.AnalysisRequest, stream bool) (llm.Payload, string, error) {
	if !a.cfg.Configured() {
		return llm.Payload{}, "", config.ErrMissingAPIKey
	}

	model := llm.SelectModel(a.cfg, req.Asteroid)
	payload := llm.NewPayload(a.cfg, model, prompt.System(), prompt.Composition(req.Asteroid), stream)

	slog.Info("analyzing asteroid composition",
		"asteroid", req.Asteroid.Name,
		"model", model,
		"streaming", stream,
	)
	return payload, model, nil
}

// Analyze performs a buffered analysis and returns the full result.
func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResponse, error) {
	payload, model, err := a.preparePayload(req, false)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	comp, err := a.client.Complete(ctx, payload)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("buffered", "error").Inc()
		return nil, err
	}
	metrics.AnalysesTotal.WithLabelValues("buffered", "ok").Inc()

	// Prefer the model the provider reports serving; with a fallback list
	// it may differ from the one we selected.
	used := comp.Model
	if used == "" {
		used = model
	}

	return &apimodels.AnalysisResponse{
		AsteroidName: req.Asteroid.Name,
		AsteroidID:   req.Asteroid.ID,
		Analysis:     comp.Content,
		ModelUsed:    used,
	}, nil
}

// AnalyzeStream performs a streaming analysis. The returned sequence follows
// the llm.Client.Stream contract: content and error events, then exactly one
// terminal event. The only pre-stream error is a missing credential.
func (a *Analyzer) AnalyzeStream(ctx context.Context, req apimodels.AnalysisRequest) (<-chan llm.Event, error) {
	payload, _, err := a.preparePayload(req, true)
	if err != nil {
		return nil, err
	}
	metrics.AnalysesTotal.WithLabelValues("streaming", "ok").Inc()
	return a.client.Stream(ctx, payload), nil
}
