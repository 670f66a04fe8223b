package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-scheduler-service/internal/domain"
)

type stubPOIProvider struct {
	pois []domain.CandidatePOI
	err  error
}

func (s *stubPOIProvider) Name() string { return "StubPOIs" }
func (s *stubPOIProvider) Search(_ context.Context, _ string, _ []string, limit int) ([]domain.CandidatePOI, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > 0 && len(s.pois) > limit {
		return s.pois[:limit], nil
	}
	return s.pois, nil
}

type stubMatrixProvider struct {
	matrix *domain.DistanceMatrix
	err    error
}

func (s *stubMatrixProvider) Name() string { return "StubMatrix" }
func (s *stubMatrixProvider) Matrix(_ context.Context, _ domain.TransportMode, _ []domain.CandidatePOI) (*domain.DistanceMatrix, error) {
	return s.matrix, s.err
}

type stubWeatherProvider struct {
	summary *domain.WeatherSummary
	err     error
}

func (s *stubWeatherProvider) Name() string { return "StubWeather" }
func (s *stubWeatherProvider) Summary(_ context.Context, _ domain.Coordinates, _ []time.Time) (*domain.WeatherSummary, error) {
	return s.summary, s.err
}

type recordingPlanRepo struct {
	saved *domain.TripPlan
}

func (r *recordingPlanRepo) SavePlan(_ context.Context, plan *domain.TripPlan) error {
	r.saved = plan
	return nil
}

func (r *recordingPlanRepo) GetPlan(_ context.Context, _ uuid.UUID) (*domain.TripPlan, error) {
	return r.saved, nil
}

func cityPool() []domain.CandidatePOI {
	pois := make([]domain.CandidatePOI, 0, 6)
	ids := []string{"a1", "b2", "c3", "d4", "e5", "f6"}
	for i, id := range ids {
		pois = append(pois, domain.CandidatePOI{
			ID:          id,
			Name:        "poi " + id,
			Lat:         35.00 + float64(i%3)*0.01,
			Lon:         135.70 + float64(i%3)*0.01,
			Category:    domain.CategoryMuseum,
			Popularity:  0.9 - float64(i)*0.1,
			MinDwellMin: 60,
		})
	}
	// Second spatial group so a two day trip splits cleanly.
	for i := 3; i < 6; i++ {
		pois[i].Lat += 1.0
	}
	return pois
}

func testRequest() PlanTripRequest {
	return PlanTripRequest{
		City:      "kyoto",
		StartDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		NumDays:   2,
		Pace:      "medium",
		Themes:    []string{"museum"},
		Mode:      domain.ModeWalk,
	}
}

func TestPlanTrip_HappyPath(t *testing.T) {
	matrix := domain.NewDistanceMatrix(domain.ModeWalk)
	pool := cityPool()
	for i := range pool {
		for j := i + 1; j < len(pool); j++ {
			matrix.Set(pool[i].ID, pool[j].ID, 15)
		}
	}

	repo := &recordingPlanRepo{}
	plan, err := PlanTrip(context.Background(), testRequest(),
		&stubPOIProvider{pois: pool},
		&stubMatrixProvider{matrix: matrix},
		&stubWeatherProvider{summary: &domain.WeatherSummary{}},
		repo,
	)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, "kyoto", plan.City)
	require.Len(t, plan.Days, 2)
	assert.Equal(t, []string{"StubPOIs", "StubMatrix", "StubWeather"}, plan.Sources)
	require.NotNil(t, repo.saved)
	assert.Equal(t, plan.ID, repo.saved.ID)

	for _, day := range plan.Days {
		assert.LessOrEqual(t, day.DayTotalTimeMin, domain.DayTotalBudgetMin)
	}
}

func TestPlanTrip_POIProviderFailureIsFatal(t *testing.T) {
	_, err := PlanTrip(context.Background(), testRequest(),
		&stubPOIProvider{err: errors.New("upstream down")},
		&stubMatrixProvider{},
		&stubWeatherProvider{},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search pois")
}

func TestPlanTrip_DegradesWhenMatrixAndWeatherFail(t *testing.T) {
	plan, err := PlanTrip(context.Background(), testRequest(),
		&stubPOIProvider{pois: cityPool()},
		&stubMatrixProvider{err: errors.New("matrix down")},
		&stubWeatherProvider{err: errors.New("forecast down")},
		nil,
	)
	require.NoError(t, err)

	// Degraded providers are not credited as sources.
	assert.Equal(t, []string{"StubPOIs"}, plan.Sources)
	require.Len(t, plan.Days, 2)
	for _, day := range plan.Days {
		assert.NotEmpty(t, day.Slots)
	}
}

func TestPlanTrip_ValidatesRequest(t *testing.T) {
	req := testRequest()
	req.City = "  "
	_, err := PlanTrip(context.Background(), req, &stubPOIProvider{}, &stubMatrixProvider{}, &stubWeatherProvider{}, nil)
	require.Error(t, err)

	req = testRequest()
	req.NumDays = 0
	_, err = PlanTrip(context.Background(), req, &stubPOIProvider{}, &stubMatrixProvider{}, &stubWeatherProvider{}, nil)
	require.Error(t, err)
}

func TestDeriveRoutingParams(t *testing.T) {
	p := DeriveRoutingParams("relaxed", []string{"museum"}, domain.ModeTransit)
	assert.InDelta(t, 0.8, p.PaceCoeff, 1e-9)
	assert.Equal(t, domain.ModeTransit, p.PrimaryMode)
	assert.InDelta(t, 1.0, p.ThemeWeight(domain.CategoryMuseum), 1e-9)
	assert.InDelta(t, domain.DefaultThemeWeight, p.ThemeWeight(domain.CategoryPark), 1e-9)
	assert.InDelta(t, baseBufferRatio, p.BufferRatio, 1e-9)

	p = DeriveRoutingParams("unknown", nil, domain.ModeWalk)
	assert.InDelta(t, 1.0, p.PaceCoeff, 1e-9)
}
