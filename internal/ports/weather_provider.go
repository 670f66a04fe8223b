package ports

import (
	"context"
	"time"

	"trip-scheduler-service/internal/domain"
)

// Contract for retrieving day-level weather signals for a trip range.
type WeatherProvider interface {
	// Name identifies the provider in plan provenance metadata.
	Name() string
	// Summary returns per-date precipitation signals around the given
	// location. Dates without data may be absent from the result.
	Summary(ctx context.Context, loc domain.Coordinates, dates []time.Time) (*domain.WeatherSummary, error)
}
