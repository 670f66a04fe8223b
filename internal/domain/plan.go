package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotKind distinguishes visit slots from the fixed meal block.
type SlotKind string

const (
	SlotVisit SlotKind = "visit"
	SlotMeal  SlotKind = "meal"
)

// TransportInfo describes the inbound travel leg of a visit slot.
type TransportInfo struct {
	Mode   TransportMode
	ETAMin int
}

// Represents one entry in a day's timeline: either a POI visit with its
// inbound travel leg, or the meal block. Slots within a day are strictly
// ordered by start time and never overlap.
type Slot struct {
	Start     time.Time
	End       time.Time
	Kind      SlotKind
	POIID     string         // empty for meal slots
	Transport *TransportInfo // nil for meal slots and the first visit of a block
}

// DurationMin returns the slot length in whole minutes.
func (s Slot) DurationMin() int {
	return int(s.End.Sub(s.Start).Minutes())
}

// Represents the planned timeline for a single calendar date.
// A DayPlan is the output of the slot builder and describes the ordered
// sequence of visits and meal blocks along with aggregate metrics.
// It is immutable planning data and contains no side effects.
type DayPlan struct {
	Date            time.Time
	Slots           []Slot
	DayTotalTimeMin int
	TransitShare    float64
}

// TripPlan aggregates the per-day plans for one scheduling run.
type TripPlan struct {
	ID        uuid.UUID
	City      string
	Days      []DayPlan
	Sources   []string
	CreatedAt time.Time
}
