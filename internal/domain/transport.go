package domain

// TransportMode identifies how the party moves between POIs within a day.
type TransportMode string

const (
	ModeWalk    TransportMode = "walk"
	ModeTransit TransportMode = "transit"
	ModeDrive   TransportMode = "drive"
)

// Average speeds in km/h used when a matrix entry is missing and the ETA has
// to be estimated from straight-line distance.
var modeSpeedKmh = map[TransportMode]float64{
	ModeWalk:    4.5,
	ModeTransit: 20.0,
	ModeDrive:   30.0,
}

// SpeedKmh returns the fallback average speed for the mode.
// Unknown modes use walking speed, the most conservative estimate.
func (m TransportMode) SpeedKmh() float64 {
	if v, ok := modeSpeedKmh[m]; ok {
		return v
	}
	return modeSpeedKmh[ModeWalk]
}

// ParseTransportMode validates a free-form mode string, defaulting to walking.
func ParseTransportMode(s string) TransportMode {
	switch TransportMode(s) {
	case ModeWalk, ModeTransit, ModeDrive:
		return TransportMode(s)
	default:
		return ModeWalk
	}
}
