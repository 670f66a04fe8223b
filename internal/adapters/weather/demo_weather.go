package weather

import (
	"context"
	"time"

	"trip-scheduler-service/internal/domain"
)

// DemoWeatherProvider produces a synthetic forecast for offline runs. The
// precipitation probability ramps up over the trip so buffer handling stays
// exercised without a network dependency.
type DemoWeatherProvider struct{}

func NewDemoWeatherProvider() *DemoWeatherProvider { return &DemoWeatherProvider{} }

func (p *DemoWeatherProvider) Name() string { return "DemoWeather" }

func (p *DemoWeatherProvider) Summary(
	_ context.Context,
	_ domain.Coordinates,
	dates []time.Time,
) (*domain.WeatherSummary, error) {
	summary := &domain.WeatherSummary{}
	for i, date := range dates {
		prob := 0.2 + 0.05*float64(i)
		if prob > 0.8 {
			prob = 0.8
		}
		summary.ByDate = append(summary.ByDate, domain.DayWeather{
			Date:       date,
			PrecipProb: prob,
			Note:       precipNote(prob),
		})
	}
	return summary, nil
}
