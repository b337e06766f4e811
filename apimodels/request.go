package apimodels

// AsteroidData holds the physical and orbital data for one asteroid.
// Only Name and ID are required; optional attributes use pointers so an
// absent value can be told apart from a zero value.
type AsteroidData struct {
	Name string `json:"name"`
	ID   string `json:"id"`

	SpectralType        *string  `json:"spectral_type,omitempty"`
	Albedo              *float64 `json:"albedo,omitempty"`
	AbsoluteMagnitude   *float64 `json:"absolute_magnitude,omitempty"`
	EstimatedDiameterKm *float64 `json:"estimated_diameter_km,omitempty"`
	OrbitalPeriodDays   *float64 `json:"orbital_period_days,omitempty"`
	SemiMajorAxisAU     *float64 `json:"semi_major_axis_au,omitempty"`
	Eccentricity        *float64 `json:"eccentricity,omitempty"`
	InclinationDeg      *float64 `json:"inclination_deg,omitempty"`

	// AdditionalData carries any extra key-value facts the caller wants
	// folded into the analysis prompt.
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	Asteroid AsteroidData `json:"asteroid"`

	// UseStreaming selects SSE delivery. Defaults to true when omitted.
	UseStreaming *bool `json:"use_streaming,omitempty"`
}

// Streaming reports the effective delivery mode.
func (r AnalysisRequest) Streaming() bool {
	return r.UseStreaming == nil || *r.UseStreaming
}
