package llm

import (
	"github.com/Tom1779/NASAHackathon2025/apimodels"
	"github.com/Tom1779/NASAHackathon2025/internal/config"
)

// SelectModel picks the advanced model when a spectral classification is
// available, otherwise the default model. The fallback model is appended by
// NewPayload regardless of which primary is chosen.
func SelectModel(cfg *config.OpenRouterConfig, a apimodels.AsteroidData) string {
	if a.SpectralType != nil && *a.SpectralType != "" {
		return cfg.AdvancedModel
	}
	return cfg.DefaultModel
}

// NewPayload assembles the outbound request body for one analysis call.
func NewPayload(cfg *config.OpenRouterConfig, model, systemPrompt, userPrompt string, stream bool) Payload {
	return Payload{
		Model:  model,
		Models: []string{model, cfg.FallbackModel},
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Stream:      stream,
	}
}
