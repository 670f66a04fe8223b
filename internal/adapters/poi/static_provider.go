package poi

import (
	"context"
	"fmt"
	"sort"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

// StaticPOIProvider serves curated candidates from the local repository.
// It is the default provider when no external API key is configured.
type StaticPOIProvider struct {
	repo ports.POIRepository
}

func NewStaticPOIProvider(repo ports.POIRepository) *StaticPOIProvider {
	return &StaticPOIProvider{repo: repo}
}

func (p *StaticPOIProvider) Name() string { return "StaticCatalog" }

func (p *StaticPOIProvider) Search(
	ctx context.Context,
	city string,
	themes []string,
	limit int,
) ([]domain.CandidatePOI, error) {
	candidates, err := p.repo.ListPOIs(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("static provider: list pois: %w", err)
	}

	if len(themes) > 0 {
		wanted := make(map[domain.Category]bool, len(themes))
		for _, theme := range themes {
			wanted[domain.ParseCategory(theme)] = true
		}
		filtered := candidates[:0]
		for _, c := range candidates {
			if wanted[c.Category] {
				filtered = append(filtered, c)
			}
		}
		// An over-narrow theme filter should not leave the planner with
		// nothing to schedule.
		if len(filtered) > 0 {
			candidates = filtered
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
