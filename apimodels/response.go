package apimodels

// AnalysisResponse is the buffered-mode result of POST /analyze.
type AnalysisResponse struct {
	AsteroidName string `json:"asteroid_name"`
	AsteroidID   string `json:"asteroid_id"`

	// The composition analysis text returned by the model
	Analysis string `json:"analysis"`

	// Model that produced the analysis
	ModelUsed string `json:"model_used"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status               string `json:"status"`
	OpenRouterConfigured bool   `json:"openrouter_configured"`
}

// InfoResponse is the body of GET /, describing the API.
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
