package ports

import (
	"context"

	"github.com/google/uuid"

	"trip-scheduler-service/internal/domain"
)

// Port: a boundary for retrieving stored POI candidates.
type POIRepository interface {
	// Retrieve all candidates stored for a city.
	ListPOIs(ctx context.Context, city string) ([]domain.CandidatePOI, error)
}

// Port: a boundary for persisting and retrieving finished trip plans.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.TripPlan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.TripPlan, error)
}
