package services

import (
	"strings"

	"trip-scheduler-service/internal/domain"
)

const baseBufferRatio = 0.15

var paceCoefficients = map[string]float64{
	"relaxed": 0.8,
	"medium":  1.0,
	"tight":   1.2,
}

// Translate request-level preferences into the coefficients the scheduler
// consumes. Unknown pace values fall back to medium.
func DeriveRoutingParams(pace string, themes []string, mode domain.TransportMode) domain.RoutingParams {
	coeff, ok := paceCoefficients[strings.ToLower(strings.TrimSpace(pace))]
	if !ok {
		coeff = paceCoefficients["medium"]
	}

	weights := make(map[domain.Category]float64, len(themes))
	for _, theme := range themes {
		weights[domain.ParseCategory(theme)] = 1.0
	}

	return domain.RoutingParams{
		PrimaryMode:  mode,
		PaceCoeff:    coeff,
		ThemeWeights: weights,
		BufferRatio:  baseBufferRatio,
	}
}
