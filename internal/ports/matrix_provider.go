package ports

import (
	"context"

	"trip-scheduler-service/internal/domain"
)

// Contract for retrieving pairwise travel-time estimates between POIs.
// Implementations may return a sparse matrix; the scheduler falls back to
// distance-based estimates for missing pairs.
type MatrixProvider interface {
	// Name identifies the provider in plan provenance metadata.
	Name() string
	// Matrix returns estimated travel times in minutes between POI pairs
	// for the given transport mode.
	Matrix(ctx context.Context, mode domain.TransportMode, pois []domain.CandidatePOI) (*domain.DistanceMatrix, error)
}
