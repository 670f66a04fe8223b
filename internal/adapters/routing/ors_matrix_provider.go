package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"trip-scheduler-service/internal/adapters/cache"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/platform/obs"
)

// Bound on concurrent matrix row requests against the external API.
const maxConcurrentRows = 5

// ORSMatrixProvider builds a pairwise travel-time matrix using the
// OpenRouteService matrix endpoint.
//
// It coordinates:
//   - Persistent eta caching per POI pair
//   - External API calls with retry/backoff
//   - Bounded-concurrency row fetches across origins
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	matrixCache *cache.SqliteMatrixCache
}

func NewORSMatrixProvider(apiKey string, matrixCache *cache.SqliteMatrixCache) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSMatrixProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		matrixCache: matrixCache,
	}

	return provider, nil
}

func (o *ORSMatrixProvider) Name() string { return "OpenRouteService" }

// profileFor maps the trip's transport mode onto the nearest ORS routing
// profile. ORS has no public-transit profile; transit trips reuse driving
// times as the closest available estimate.
func profileFor(mode domain.TransportMode) string {
	if mode == domain.ModeWalk {
		return "foot-walking"
	}
	return "driving-car"
}

// Matrix computes travel times between all POI pairs.
//
// Rows are fetched one origin at a time against the not-yet-covered
// destinations, cache-first, with bounded concurrency.
func (o *ORSMatrixProvider) Matrix(
	ctx context.Context,
	mode domain.TransportMode,
	pois []domain.CandidatePOI,
) (_ *domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "ors.Matrix")(&err)

	matrix := domain.NewDistanceMatrix(mode)
	if len(pois) < 2 {
		return matrix, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRows)

	// Only the upper triangle is needed: the domain matrix is keyed by the
	// unordered pair, so each origin row targets the POIs after it.
	for i := range pois[:len(pois)-1] {
		origin := pois[i]
		targets := pois[i+1:]

		g.Go(func() error {
			etas, err := o.rowETAs(ctx, mode, origin, targets)
			if err != nil {
				return fmt.Errorf("ors matrix: row from %q: %w", origin.ID, err)
			}

			mu.Lock()
			for id, eta := range etas {
				matrix.Set(origin.ID, id, eta)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}

// rowETAs returns eta minutes from origin to each target, consulting the
// persistent cache before issuing an external call for the misses.
func (o *ORSMatrixProvider) rowETAs(
	ctx context.Context,
	mode domain.TransportMode,
	origin domain.CandidatePOI,
	targets []domain.CandidatePOI,
) (map[string]float64, error) {
	ids := make([]string, 0, len(targets))
	byID := make(map[string]domain.CandidatePOI, len(targets))
	for _, t := range targets {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	hits := make(map[string]float64)
	if o.matrixCache != nil {
		var err error
		hits, err = o.matrixCache.GetMany(ctx, string(mode), origin.ID, ids)
		if err != nil {
			return nil, fmt.Errorf("matrix cache read: %w", err)
		}
	}

	misses := make([]domain.CandidatePOI, 0, len(targets))
	for _, t := range targets {
		if _, ok := hits[t.ID]; !ok {
			misses = append(misses, t)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	fetched, err := o.fetchMatrixRow(ctx, mode, origin, misses)
	if err != nil {
		return nil, err
	}

	if o.matrixCache != nil && len(fetched) > 0 {
		if err := o.matrixCache.PutMany(ctx, string(mode), origin.ID, fetched); err != nil {
			// A failed cache write costs a future API call, not correctness.
			slog.Warn("matrix cache write failed", slog.Any("error", err))
		}
	}

	out := make(map[string]float64, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow retrieves travel durations from one origin POI to many
// destination POIs using the OpenRouteService matrix endpoint.
func (o *ORSMatrixProvider) fetchMatrixRow(
	ctx context.Context,
	mode domain.TransportMode,
	origin domain.CandidatePOI,
	destinations []domain.CandidatePOI,
) (map[string]float64, error) {
	if len(destinations) == 0 {
		return map[string]float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, profileFor(mode))

	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, origin.Coordinates().CoordsToList())
	for _, d := range destinations {
		locations = append(locations, d.Coordinates().CoordsToList())
	}

	destIdx := make([]int, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"duration"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Durations) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got durations=%d", len(mr.Durations))
	}

	row := mr.Durations[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf(
			"row length does not match destinations: durations=%d destinations=%d",
			len(row), len(destinations),
		)
	}

	out := make(map[string]float64, len(destinations))
	for i, dest := range destinations {
		secondsPtr := row[i]
		if secondsPtr == nil {
			// Unroutable pair: leave it absent and let the scheduler fall
			// back to a distance-based estimate.
			continue
		}
		out[dest.ID] = *secondsPtr / 60.0
	}

	return out, nil
}
