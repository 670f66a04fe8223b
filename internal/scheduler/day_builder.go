package scheduler

import (
	"math"
	"time"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/geo"
)

// RainBufferRatio is the floor applied to the travel buffer on days with a
// precipitation probability above RainThreshold.
const (
	RainBufferRatio = 0.25
	RainThreshold   = 0.5
)

// placement is a POI committed to a block, with its applied inbound travel
// time (zero for the first placement of a block) and scaled dwell time.
type placement struct {
	poi       domain.CandidatePOI
	travelMin int
	dwellMin  int
}

// blockState tracks packing progress within one fixed day block.
type blockState struct {
	startMin int
	endMin   int
	cursor   int
	last     *domain.CandidatePOI
	open     bool
	placed   []placement
}

func newBlockState(startMin, endMin int) *blockState {
	return &blockState{startMin: startMin, endMin: endMin, cursor: startMin, open: true}
}

func (b *blockState) remaining() int { return b.endMin - b.cursor }

// BuildDay packs one day's candidate group into an ordered, time-boxed
// timeline of visit slots plus the fixed lunch block.
//
// Selection is greedy: candidates are ranked by score, blocks are filled
// alternately morning-first, and within a block placement follows a
// nearest-neighbor chain from the block's anchor. A candidate that cannot
// fit the remaining block time is skipped, never an error.
func BuildDay(
	date time.Time,
	candidates []domain.CandidatePOI,
	matrix *domain.DistanceMatrix,
	params domain.RoutingParams,
	weather *domain.DayWeather,
) domain.DayPlan {
	if len(candidates) == 0 {
		return domain.DayPlan{Date: date, Slots: []domain.Slot{}}
	}

	ranked := rankByScore(candidates, ScoreAll(candidates, params))
	buffer := effectiveBuffer(params.BufferRatio, weather)

	morning := newBlockState(domain.MorningStartMin, domain.MorningEndMin)
	afternoon := newBlockState(domain.AfternoonStartMin, domain.AfternoonEndMin)
	blocks := [2]*blockState{morning, afternoon}

	placedIDs := make(map[string]bool, domain.MaxVisitsPerDay)
	visits := 0

	for turn := 0; visits < domain.MaxVisitsPerDay && (morning.open || afternoon.open); turn++ {
		b := blocks[turn%2]
		if !b.open {
			continue
		}

		cand, travel, ok := nextFit(b, ranked, placedIDs, matrix, params, buffer)
		if !ok {
			b.open = false
			continue
		}

		dwell := scaledDwell(cand, params.PaceCoeff)
		b.placed = append(b.placed, placement{poi: cand, travelMin: travel, dwellMin: dwell})
		b.cursor += travel + dwell
		anchor := cand
		b.last = &anchor
		placedIDs[cand.ID] = true
		visits++
	}

	slots := emitBlock(date, morning, params.PrimaryMode)
	if visits > 0 {
		slots = append(slots, domain.Slot{
			Start: domain.ClockTime(date, domain.LunchStartMin),
			End:   domain.ClockTime(date, domain.LunchEndMin),
			Kind:  domain.SlotMeal,
		})
	}
	slots = append(slots, emitBlock(date, afternoon, params.PrimaryMode)...)

	var transitMin int
	for _, b := range blocks {
		for _, pl := range b.placed {
			transitMin += pl.travelMin
		}
	}

	// Total scheduled time is the slot durations plus the travel gaps
	// folded between them.
	totalMin := transitMin
	for _, s := range slots {
		totalMin += s.DurationMin()
	}

	var transitShare float64
	if totalMin > 0 {
		transitShare = float64(transitMin) / float64(totalMin)
	}

	return domain.DayPlan{
		Date:            date,
		Slots:           slots,
		DayTotalTimeMin: totalMin,
		TransitShare:    transitShare,
	}
}

// nextFit selects the next candidate for a block.
//
// An empty block anchors on the top-scored unplaced candidate whose dwell
// fits. A non-empty block extends the nearest-neighbor chain: the unplaced
// candidate with the lowest applied travel time from the block's last POI
// whose travel plus dwell still fits, ties broken by ascending identifier.
func nextFit(
	b *blockState,
	ranked []domain.CandidatePOI,
	placedIDs map[string]bool,
	matrix *domain.DistanceMatrix,
	params domain.RoutingParams,
	buffer float64,
) (domain.CandidatePOI, int, bool) {
	if b.last == nil {
		for _, cand := range ranked {
			if placedIDs[cand.ID] {
				continue
			}
			if scaledDwell(cand, params.PaceCoeff) <= b.remaining() {
				return cand, 0, true
			}
		}
		return domain.CandidatePOI{}, 0, false
	}

	var best domain.CandidatePOI
	bestTravel := math.MaxInt
	found := false

	for _, cand := range ranked {
		if placedIDs[cand.ID] {
			continue
		}
		travel := appliedETAMin(matrix, params.PrimaryMode, buffer, *b.last, cand)
		if travel+scaledDwell(cand, params.PaceCoeff) > b.remaining() {
			continue
		}
		// Tie-breaker ensures deterministic ordering when travel times are equal.
		if travel < bestTravel || (travel == bestTravel && found && cand.ID < best.ID) {
			best, bestTravel = cand, travel
			found = true
		}
	}
	if !found {
		return domain.CandidatePOI{}, 0, false
	}
	return best, bestTravel, true
}

// appliedETAMin looks up the raw travel time between two POIs, estimating
// from straight-line distance when the matrix has no entry, then inflates it
// by the buffer ratio and rounds to the nearest whole minute.
func appliedETAMin(
	matrix *domain.DistanceMatrix,
	mode domain.TransportMode,
	buffer float64,
	from, to domain.CandidatePOI,
) int {
	raw, ok := matrix.Lookup(from.ID, to.ID)
	if !ok {
		raw = geo.FallbackETAMin(mode, from, to)
	}
	return int(math.Round(raw * (1 + buffer)))
}

func scaledDwell(p domain.CandidatePOI, paceCoeff float64) int {
	return int(math.Round(float64(p.MinDwellMin) * paceCoeff))
}

func effectiveBuffer(base float64, weather *domain.DayWeather) float64 {
	if weather != nil && weather.PrecipProb > RainThreshold && base < RainBufferRatio {
		return RainBufferRatio
	}
	return base
}

// emitBlock converts a block's placements into ordered visit slots anchored
// on the block's start time. Consecutive visits are separated by exactly the
// applied travel time; the inbound leg is recorded on the arriving slot.
func emitBlock(date time.Time, b *blockState, mode domain.TransportMode) []domain.Slot {
	slots := make([]domain.Slot, 0, len(b.placed))
	cursor := b.startMin
	for _, pl := range b.placed {
		start := cursor + pl.travelMin
		end := start + pl.dwellMin

		var transport *domain.TransportInfo
		if pl.travelMin > 0 {
			transport = &domain.TransportInfo{Mode: mode, ETAMin: pl.travelMin}
		}

		slots = append(slots, domain.Slot{
			Start:     domain.ClockTime(date, start),
			End:       domain.ClockTime(date, end),
			Kind:      domain.SlotVisit,
			POIID:     pl.poi.ID,
			Transport: transport,
		})
		cursor = end
	}
	return slots
}
