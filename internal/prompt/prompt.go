// Package prompt builds the instruction text sent to the model for an
// asteroid composition analysis.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tom1779/NASAHackathon2025/apimodels"
)

const systemPrompt = `You are an expert planetary scientist with deep knowledge of:
- Asteroid spectral classification (C, S, M, X-type asteroids and subtypes)
- Mineralogical composition analysis
- Photometric properties and their implications
- Orbital dynamics and asteroid families
- Meteorite analogs and composition
- Space weathering effects
- Asteroid formation and evolution

Provide scientifically accurate, detailed analysis based on the available data.
When spectral type is available, use it as the primary indicator for composition.
Explain your reasoning and cite relevant asteroid families or well-studied examples when applicable.
Be specific about confidence levels and acknowledge uncertainties where appropriate.`

const analysisTemplate = `
Based on this data, provide:
1. **Primary Composition**: What minerals and materials are most likely present
2. **Spectral Class Analysis**: Detailed interpretation of the spectral type (if provided)
3. **Surface Characteristics**: Expected surface features and properties
4. **Formation History**: Likely formation environment and evolution
5. **Comparison**: How this asteroid compares to known asteroid families
6. **Scientific Value**: Potential research or resource value

Format your response in clear sections with detailed explanations based on current planetary science knowledge.
`

// System returns the fixed system prompt for composition analysis.
func System() string {
	return systemPrompt
}

// Composition builds the user prompt for one asteroid. Identity fields are
// always present; optional attributes appear only when set.
func Composition(a apimodels.AsteroidData) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert planetary scientist specializing in asteroid composition analysis.

Analyze the following asteroid data and provide a detailed composition estimate:

Asteroid Name: %s
Asteroid ID: %s
`, a.Name, a.ID)

	if a.SpectralType != nil {
		fmt.Fprintf(&b, "Spectral Type: %s\n", *a.SpectralType)
	}
	if a.Albedo != nil {
		fmt.Fprintf(&b, "Albedo: %v\n", *a.Albedo)
	}
	if a.AbsoluteMagnitude != nil {
		fmt.Fprintf(&b, "Absolute Magnitude (H): %v\n", *a.AbsoluteMagnitude)
	}
	if a.EstimatedDiameterKm != nil {
		fmt.Fprintf(&b, "Estimated Diameter: %v km\n", *a.EstimatedDiameterKm)
	}
	if a.OrbitalPeriodDays != nil {
		fmt.Fprintf(&b, "Orbital Period: %v days\n", *a.OrbitalPeriodDays)
	}
	if a.SemiMajorAxisAU != nil {
		fmt.Fprintf(&b, "Semi-major Axis: %v AU\n", *a.SemiMajorAxisAU)
	}
	if a.Eccentricity != nil {
		fmt.Fprintf(&b, "Eccentricity: %v\n", *a.Eccentricity)
	}
	if a.InclinationDeg != nil {
		fmt.Fprintf(&b, "Inclination: %v°\n", *a.InclinationDeg)
	}

	if len(a.AdditionalData) > 0 {
		b.WriteString("\nAdditional Data:\n")
		keys := make([]string, 0, len(a.AdditionalData))
		for k := range a.AdditionalData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, a.AdditionalData[k])
		}
	}

	b.WriteString(analysisTemplate)
	return b.String()
}
