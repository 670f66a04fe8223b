package domain

import "time"

// DayWeather is the weather signal for a single calendar date.
// PrecipProb is a probability in [0, 1].
type DayWeather struct {
	Date       time.Time
	PrecipProb float64
	Note       string
}

// WeatherSummary holds day-level weather signals for a trip range.
// Missing dates imply no scheduling adjustment.
type WeatherSummary struct {
	ByDate []DayWeather
}

// For returns the entry matching the given calendar date, or nil when the
// summary has no signal for it.
func (w *WeatherSummary) For(date time.Time) *DayWeather {
	if w == nil {
		return nil
	}
	y, m, d := date.Date()
	for i := range w.ByDate {
		ey, em, ed := w.ByDate[i].Date.Date()
		if ey == y && em == m && ed == d {
			return &w.ByDate[i]
		}
	}
	return nil
}
