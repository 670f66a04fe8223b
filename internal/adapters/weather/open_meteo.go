package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/platform/obs"
	"trip-scheduler-service/internal/ports"
)

const (
	openMeteoBaseURL = "https://api.open-meteo.com"
	forecastCacheTTL = 30 * time.Minute
)

// OpenMeteoProvider fetches day-level precipitation probabilities from the
// keyless Open-Meteo forecast API. Responses are cached per location and
// date range so repeated planning runs stay off the network.
type OpenMeteoProvider struct {
	session *http.Client
	baseURL string
	cache   ports.KVCache
}

func NewOpenMeteoProvider(cache ports.KVCache) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: openMeteoBaseURL,
		cache:   cache,
	}
}

func (p *OpenMeteoProvider) Name() string { return "OpenMeteo" }

type forecastResponse struct {
	Daily struct {
		Time              []string   `json:"time"`
		PrecipProbability []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Summary returns precipitation probabilities for the trip dates around the
// given location. Dates the API has no data for are absent from the result,
// which downstream treats as "no adjustment".
func (p *OpenMeteoProvider) Summary(
	ctx context.Context,
	loc domain.Coordinates,
	dates []time.Time,
) (_ *domain.WeatherSummary, err error) {
	defer obs.Time(ctx, "openmeteo.Summary")(&err)

	if len(dates) == 0 {
		return &domain.WeatherSummary{}, nil
	}

	start := dates[0].Format("2006-01-02")
	end := dates[len(dates)-1].Format("2006-01-02")
	cacheKey := fmt.Sprintf("weather:%.4f:%.4f:%s:%s", loc.Lat, loc.Lon, start, end)

	body, ok, err := p.cachedGet(ctx, cacheKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		body, err = p.fetchForecast(ctx, loc, start, end)
		if err != nil {
			return nil, err
		}
		if p.cache != nil {
			_ = p.cache.Set(ctx, cacheKey, body, forecastCacheTTL)
		}
	}

	var fr forecastResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("open-meteo: decode forecast: %w", err)
	}

	summary := &domain.WeatherSummary{}
	for i, day := range fr.Daily.Time {
		if i >= len(fr.Daily.PrecipProbability) || fr.Daily.PrecipProbability[i] == nil {
			continue
		}
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		prob := *fr.Daily.PrecipProbability[i] / 100.0
		summary.ByDate = append(summary.ByDate, domain.DayWeather{
			Date:       date,
			PrecipProb: prob,
			Note:       precipNote(prob),
		})
	}
	return summary, nil
}

func (p *OpenMeteoProvider) cachedGet(ctx context.Context, key string) ([]byte, bool, error) {
	if p.cache == nil {
		return nil, false, nil
	}
	body, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("open-meteo: cache read: %w", err)
	}
	return body, ok, nil
}

func (p *OpenMeteoProvider) fetchForecast(
	ctx context.Context,
	loc domain.Coordinates,
	start, end string,
) ([]byte, error) {
	endpoint := p.baseURL + "/v1/forecast"

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", loc.Lat))
	q.Set("longitude", fmt.Sprintf("%.4f", loc.Lon))
	q.Set("daily", "precipitation_probability_max")
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: read forecast body: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("open-meteo: empty forecast body")
	}
	return body, nil
}

func precipNote(prob float64) string {
	switch {
	case prob > 0.7:
		return "Rain very likely; plan indoor stretches."
	case prob > 0.5:
		return "Showers likely; allow extra transit time."
	case prob > 0.3:
		return "Chance of showers."
	default:
		return "Expect mostly dry conditions."
	}
}
