package ports

import (
	"context"

	"trip-scheduler-service/internal/domain"
)

// Contract for fetching candidate points of interest for a city.
type POIProvider interface {
	// Name identifies the provider in plan provenance metadata.
	Name() string
	// Search returns up to limit candidates for the city, biased toward the
	// stated themes when the backing source supports it.
	Search(ctx context.Context, city string, themes []string, limit int) ([]domain.CandidatePOI, error)
}
