// Package scheduler turns a candidate POI pool, a pairwise travel-time
// matrix and day-level weather signals into a concrete multi-day visiting
// schedule.
//
// The scheduler is a pure, single-threaded computation: identical inputs
// produce identical outputs. It holds no state between calls, so independent
// scheduling runs can execute concurrently without coordination.
package scheduler

import (
	"errors"
	"time"

	"trip-scheduler-service/internal/domain"
)

// Schedule produces one DayPlan per trip date, in chronological order.
//
// Clustering runs once for the whole range; each date is then packed
// independently with its weather entry (or none if absent). There is no
// cross-day optimization pass: once a day is built it is never rebalanced.
//
// The only fatal condition is an empty date range. Sparse input (no
// candidates, missing matrix pairs, missing weather) degrades to empty or
// partial days rather than erroring.
func Schedule(
	dates []time.Time,
	candidates []domain.CandidatePOI,
	matrix *domain.DistanceMatrix,
	weather *domain.WeatherSummary,
	params domain.RoutingParams,
) ([]domain.DayPlan, error) {
	if len(dates) == 0 {
		return nil, errors.New("schedule: trip date range must not be empty")
	}

	byDay, err := AssignDays(candidates, len(dates))
	if err != nil {
		return nil, err
	}

	days := make([]domain.DayPlan, 0, len(dates))
	for i, date := range dates {
		days = append(days, BuildDay(date, byDay[i], matrix, params, weather.For(date)))
	}
	return days, nil
}
