package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-scheduler-service/internal/adapters/cache"
	"trip-scheduler-service/internal/domain"
)

func tripDates(n int) []time.Time {
	dates := make([]time.Time, 0, n)
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

func TestDemoWeather_RampsAndCaps(t *testing.T) {
	p := NewDemoWeatherProvider()

	summary, err := p.Summary(context.Background(), domain.Coordinates{}, tripDates(15))
	require.NoError(t, err)
	require.Len(t, summary.ByDate, 15)

	assert.InDelta(t, 0.2, summary.ByDate[0].PrecipProb, 1e-9)
	assert.InDelta(t, 0.25, summary.ByDate[1].PrecipProb, 1e-9)
	assert.InDelta(t, 0.8, summary.ByDate[14].PrecipProb, 1e-9)
}

func TestOpenMeteo_ParsesDailyProbabilities(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "precipitation_probability_max", r.URL.Query().Get("daily"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"daily": {
				"time": ["2026-04-10", "2026-04-11", "2026-04-12"],
				"precipitation_probability_max": [10, 65, null]
			}
		}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(cache.NewMemoryCache(time.Minute))
	p.baseURL = srv.URL

	summary, err := p.Summary(context.Background(), domain.Coordinates{Lat: 35.0, Lon: 135.7}, tripDates(3))
	require.NoError(t, err)

	// The null entry is dropped rather than reported as zero.
	require.Len(t, summary.ByDate, 2)
	assert.InDelta(t, 0.10, summary.ByDate[0].PrecipProb, 1e-9)
	assert.InDelta(t, 0.65, summary.ByDate[1].PrecipProb, 1e-9)
	assert.NotEmpty(t, summary.ByDate[1].Note)

	// Second call for the same range is served from cache.
	_, err = p.Summary(context.Background(), domain.Coordinates{Lat: 35.0, Lon: 135.7}, tripDates(3))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestOpenMeteo_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(nil)
	p.baseURL = srv.URL

	_, err := p.Summary(context.Background(), domain.Coordinates{}, tripDates(1))
	require.Error(t, err)
}
