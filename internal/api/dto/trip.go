package dto

import "time"

type TripRequest struct {
	City          string   `json:"city"`
	StartDate     string   `json:"start_date"`
	NumDays       int      `json:"num_days"`
	Pace          string   `json:"pace,omitempty"`
	Themes        []string `json:"themes,omitempty"`
	TransportMode string   `json:"transport_mode,omitempty"`
	MaxPOIs       int      `json:"max_pois,omitempty"`
}

type TransportResponse struct {
	Mode   string `json:"mode"`
	ETAMin int    `json:"eta_min"`
}

type SlotResponse struct {
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Kind      string             `json:"kind"`
	POIID     string             `json:"poi_id,omitempty"`
	Transport *TransportResponse `json:"transport,omitempty"`
}

type DayPlanResponse struct {
	Date            string         `json:"date"`
	Slots           []SlotResponse `json:"slots"`
	DayTotalTimeMin int            `json:"day_total_time_min"`
	TransitShare    float64        `json:"transit_share"`
}

type TripResponse struct {
	PlanID    string            `json:"plan_id"`
	City      string            `json:"city"`
	Days      []DayPlanResponse `json:"days"`
	Sources   []string          `json:"sources"`
	CreatedAt time.Time         `json:"created_at"`
}
