package poi

import (
	"context"
	"fmt"
	"sort"
	"time"

	"googlemaps.github.io/maps"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/platform/obs"
)

// PlacesPOIProvider discovers candidate points of interest through the Google
// Places text search API, one query per requested theme.
type PlacesPOIProvider struct {
	client *maps.Client
}

func NewPlacesPOIProvider(apiKey string) (*PlacesPOIProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("places: create maps client: %w", err)
	}
	return &PlacesPOIProvider{client: client}, nil
}

func (p *PlacesPOIProvider) Name() string { return "GooglePlaces" }

func (p *PlacesPOIProvider) Search(
	ctx context.Context,
	city string,
	themes []string,
	limit int,
) (_ []domain.CandidatePOI, err error) {
	defer obs.Time(ctx, "places.Search")(&err)

	if len(themes) == 0 {
		themes = []string{"sightseeing"}
	}

	seen := make(map[string]bool)
	var candidates []domain.CandidatePOI

	for _, theme := range themes {
		r := &maps.TextSearchRequest{
			Query: fmt.Sprintf("%s in %s", theme, city),
		}
		resp, err := p.client.TextSearch(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("places: text search %q: %w", theme, err)
		}

		category := domain.ParseCategory(theme)
		for _, result := range resp.Results {
			if seen[result.PlaceID] {
				continue
			}
			seen[result.PlaceID] = true

			candidates = append(candidates, domain.CandidatePOI{
				ID:          result.PlaceID,
				Name:        result.Name,
				Lat:         result.Geometry.Location.Lat,
				Lon:         result.Geometry.Location.Lng,
				Category:    category,
				Popularity:  float64(result.Rating) / 5.0,
				MinDwellMin: defaultDwellMin(category),
				Source: domain.POISource{
					Name:      p.Name(),
					URL:       "https://maps.googleapis.com/maps/api/place/textsearch/json",
					FetchedAt: time.Now().UTC(),
				},
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Popularity != candidates[j].Popularity {
			return candidates[i].Popularity > candidates[j].Popularity
		}
		return candidates[i].ID < candidates[j].ID
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func defaultDwellMin(c domain.Category) int {
	switch c {
	case domain.CategoryMuseum:
		return 90
	case domain.CategoryPark:
		return 60
	case domain.CategoryViewpoint:
		return 30
	case domain.CategoryFood:
		return 60
	default:
		return 45
	}
}
