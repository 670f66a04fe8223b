package domain

// Tuning parameters derived upstream from the user's stated pace, transport
// mode and themes. Inputs to the scheduler core, never computed by it.
type RoutingParams struct {
	PrimaryMode  TransportMode
	PaceCoeff    float64
	ThemeWeights map[Category]float64
	BufferRatio  float64
}

// DefaultThemeWeight applies to categories the user did not state an
// interest in.
const DefaultThemeWeight = 0.7

// ThemeWeight returns the score multiplier for a category.
func (r RoutingParams) ThemeWeight(c Category) float64 {
	if w, ok := r.ThemeWeights[c]; ok {
		return w
	}
	if w, ok := r.ThemeWeights[CategoryOther]; ok {
		return w
	}
	return DefaultThemeWeight
}
