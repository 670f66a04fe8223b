package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/geo"
	"trip-scheduler-service/internal/platform/obs"
	"trip-scheduler-service/internal/ports"
	"trip-scheduler-service/internal/scheduler"
)

const defaultCandidateLimit = 40

type PlanTripRequest struct {
	City      string
	StartDate time.Time
	NumDays   int
	Pace      string
	Themes    []string
	Mode      domain.TransportMode
	MaxPOIs   int
}

// PlanTrip runs the full pipeline: candidate discovery, travel-time matrix
// and forecast lookups, then day assignment and slot packing. A failed POI
// lookup aborts the request; matrix and weather failures degrade to distance
// fallbacks and a dry forecast.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	pois ports.POIProvider,
	matrices ports.MatrixProvider,
	weather ports.WeatherProvider,
	plans ports.PlanRepository,
) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, errors.New("plan trip: city must not be empty")
	}
	if req.NumDays < 1 {
		return nil, fmt.Errorf("plan trip: invalid day count %d", req.NumDays)
	}

	limit := req.MaxPOIs
	if limit <= 0 {
		limit = defaultCandidateLimit
	}

	candidates, err := pois.Search(ctx, city, req.Themes, limit)
	if err != nil {
		return nil, fmt.Errorf("plan trip: search pois for %q: %w", city, err)
	}

	dates := tripDates(req.StartDate, req.NumDays)
	params := DeriveRoutingParams(req.Pace, req.Themes, req.Mode)
	sources := []string{pois.Name()}

	var (
		matrix  *domain.DistanceMatrix
		summary *domain.WeatherSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := matrices.Matrix(gctx, params.PrimaryMode, candidates)
		if err != nil {
			slog.Warn("matrix provider failed, using distance fallback",
				"provider", matrices.Name(), "err", err)
			return nil
		}
		matrix = m
		return nil
	})
	g.Go(func() error {
		s, err := weather.Summary(gctx, geo.Centroid(candidates), dates)
		if err != nil {
			slog.Warn("weather provider failed, assuming dry conditions",
				"provider", weather.Name(), "err", err)
			return nil
		}
		summary = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: gather inputs: %w", err)
	}

	if matrix != nil {
		sources = append(sources, matrices.Name())
	}
	if summary != nil {
		sources = append(sources, weather.Name())
	}

	days, err := scheduler.Schedule(dates, candidates, matrix, summary, params)
	if err != nil {
		return nil, fmt.Errorf("plan trip: schedule days: %w", err)
	}

	plan := &domain.TripPlan{
		ID:        uuid.New(),
		City:      city,
		Days:      days,
		Sources:   sources,
		CreatedAt: time.Now().UTC(),
	}

	if plans != nil {
		if err := plans.SavePlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("plan trip: save plan %s: %w", plan.ID, err)
		}
	}

	return plan, nil
}

func tripDates(start time.Time, numDays int) []time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 0, numDays)
	for i := 0; i < numDays; i++ {
		dates = append(dates, day.AddDate(0, 0, i))
	}
	return dates
}
