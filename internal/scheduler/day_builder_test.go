package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-scheduler-service/internal/domain"
)

func testParams() domain.RoutingParams {
	return domain.RoutingParams{
		PrimaryMode:  domain.ModeWalk,
		PaceCoeff:    1.0,
		ThemeWeights: map[domain.Category]float64{domain.CategoryMuseum: 1.0},
		BufferRatio:  0.15,
	}
}

func testDate() time.Time {
	return time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
}

// dayCandidates builds n candidates with descending popularity and a fully
// populated 20-minute matrix between all pairs.
func dayCandidates(n int) ([]domain.CandidatePOI, *domain.DistanceMatrix) {
	pois := make([]domain.CandidatePOI, 0, n)
	for i := 0; i < n; i++ {
		pois = append(pois, makePOI(i, 35.00))
	}
	m := domain.NewDistanceMatrix(domain.ModeWalk)
	for i := range pois {
		for j := i + 1; j < len(pois); j++ {
			m.Set(pois[i].ID, pois[j].ID, 20)
		}
	}
	return pois, m
}

func visitSlots(plan domain.DayPlan) []domain.Slot {
	out := []domain.Slot{}
	for _, s := range plan.Slots {
		if s.Kind == domain.SlotVisit {
			out = append(out, s)
		}
	}
	return out
}

func mealSlots(plan domain.DayPlan) []domain.Slot {
	out := []domain.Slot{}
	for _, s := range plan.Slots {
		if s.Kind == domain.SlotMeal {
			out = append(out, s)
		}
	}
	return out
}

func TestBuildDay_EmptyCandidates(t *testing.T) {
	plan := BuildDay(testDate(), nil, domain.NewDistanceMatrix(domain.ModeWalk), testParams(), nil)

	assert.Empty(t, plan.Slots)
	assert.Zero(t, plan.DayTotalTimeMin)
	assert.Zero(t, plan.TransitShare)
}

func TestBuildDay_PacksVisitsWithLunch(t *testing.T) {
	pois, m := dayCandidates(6)
	plan := BuildDay(testDate(), pois, m, testParams(), nil)

	visits := visitSlots(plan)
	require.NotEmpty(t, visits)
	assert.LessOrEqual(t, len(visits), domain.MaxVisitsPerDay)

	meals := mealSlots(plan)
	require.Len(t, meals, 1)
	assert.Equal(t, domain.ClockTime(testDate(), domain.LunchStartMin), meals[0].Start)
	assert.Equal(t, domain.ClockTime(testDate(), domain.LunchEndMin), meals[0].End)

	// Slots are strictly ordered and non-overlapping.
	for i := 1; i < len(plan.Slots); i++ {
		assert.False(t, plan.Slots[i].Start.Before(plan.Slots[i-1].End),
			"slot %d overlaps slot %d", i, i-1)
	}

	// Every visit lies within one of the fixed day blocks.
	morningStart := domain.ClockTime(testDate(), domain.MorningStartMin)
	morningEnd := domain.ClockTime(testDate(), domain.MorningEndMin)
	afternoonStart := domain.ClockTime(testDate(), domain.AfternoonStartMin)
	afternoonEnd := domain.ClockTime(testDate(), domain.AfternoonEndMin)
	for _, v := range visits {
		inMorning := !v.Start.Before(morningStart) && !v.End.After(morningEnd)
		inAfternoon := !v.Start.Before(afternoonStart) && !v.End.After(afternoonEnd)
		assert.True(t, inMorning || inAfternoon, "visit %s outside day blocks", v.POIID)
	}

	assert.LessOrEqual(t, plan.DayTotalTimeMin, domain.DayTotalBudgetMin)
	assert.Greater(t, plan.TransitShare, 0.0)
	assert.Less(t, plan.TransitShare, 1.0)
}

func TestBuildDay_WeatherBumpsTravelBuffer(t *testing.T) {
	pois, m := dayCandidates(3)
	params := testParams()

	mild := &domain.DayWeather{Date: testDate(), PrecipProb: 0.2}
	rainy := &domain.DayWeather{Date: testDate(), PrecipProb: 0.6}

	dryPlan := BuildDay(testDate(), pois, m, params, mild)
	wetPlan := BuildDay(testDate(), pois, m, params, rainy)

	// The second morning visit carries the inbound leg; raw eta is 20 min.
	// Base buffer 0.15 applies on the dry day, bumped to 0.25 in the rain.
	dryLeg := inboundLeg(t, dryPlan)
	wetLeg := inboundLeg(t, wetPlan)
	assert.Equal(t, 23, dryLeg.ETAMin)
	assert.Equal(t, 25, wetLeg.ETAMin)
}

func inboundLeg(t *testing.T, plan domain.DayPlan) *domain.TransportInfo {
	t.Helper()
	for _, s := range visitSlots(plan) {
		if s.Transport != nil {
			return s.Transport
		}
	}
	t.Fatal("no visit slot with an inbound travel leg")
	return nil
}

func TestBuildDay_MissingMatrixPairUsesDistanceFallback(t *testing.T) {
	pois, _ := dayCandidates(3)
	empty := domain.NewDistanceMatrix(domain.ModeWalk)

	plan := BuildDay(testDate(), pois, empty, testParams(), nil)

	visits := visitSlots(plan)
	require.NotEmpty(t, visits)
	leg := inboundLeg(t, plan)
	assert.Positive(t, leg.ETAMin)
	assert.Equal(t, domain.ModeWalk, leg.Mode)
}

func TestBuildDay_OversizedCandidateIsSkipped(t *testing.T) {
	pois, m := dayCandidates(3)
	// Most popular candidate cannot fit any block; it must be skipped, not
	// surfaced as an error.
	pois[0].MinDwellMin = 600
	pois[0].Popularity = 100

	plan := BuildDay(testDate(), pois, m, testParams(), nil)

	for _, v := range visitSlots(plan) {
		assert.NotEqual(t, pois[0].ID, v.POIID)
	}
	assert.NotEmpty(t, visitSlots(plan))
}

func TestBuildDay_TotalMatchesSlotDurationsPlusTravel(t *testing.T) {
	pois, m := dayCandidates(6)
	plan := BuildDay(testDate(), pois, m, testParams(), nil)
	require.NotEmpty(t, plan.Slots)

	var slotMin int
	for _, s := range plan.Slots {
		slotMin += s.DurationMin()
	}
	transitMin := 0
	for _, s := range visitSlots(plan) {
		if s.Transport != nil {
			transitMin += s.Transport.ETAMin
		}
	}

	assert.Equal(t, slotMin+transitMin, plan.DayTotalTimeMin)
}

func TestBuildDay_NoLunchWithoutVisits(t *testing.T) {
	pois, m := dayCandidates(2)
	for i := range pois {
		pois[i].MinDwellMin = 600
	}

	plan := BuildDay(testDate(), pois, m, testParams(), nil)

	assert.Empty(t, plan.Slots)
	assert.Zero(t, plan.DayTotalTimeMin)
	assert.Zero(t, plan.TransitShare)
}

func TestBuildDay_ConsecutiveVisitsSeparatedByTravel(t *testing.T) {
	pois, m := dayCandidates(4)
	plan := BuildDay(testDate(), pois, m, testParams(), nil)

	visits := visitSlots(plan)
	for i := 1; i < len(visits); i++ {
		prev, cur := visits[i-1], visits[i]
		if cur.Transport == nil {
			continue // first visit of the afternoon block
		}
		gap := int(cur.Start.Sub(prev.End).Minutes())
		assert.Equal(t, cur.Transport.ETAMin, gap,
			"gap between %s and %s should equal the inbound eta", prev.POIID, cur.POIID)
	}
}
