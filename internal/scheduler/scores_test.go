package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-scheduler-service/internal/domain"
)

func TestScore_PrefersThemeWeight(t *testing.T) {
	params := domain.RoutingParams{
		ThemeWeights: map[domain.Category]float64{
			domain.CategoryMuseum: 1.2,
			domain.CategoryFood:   0.8,
		},
	}

	museum := domain.CandidatePOI{ID: "a", Category: domain.CategoryMuseum, Popularity: 0.5}
	food := domain.CandidatePOI{ID: "b", Category: domain.CategoryFood, Popularity: 0.5}

	assert.Greater(t, Score(museum, params), Score(food, params))
}

func TestScore_UnmappedCategoryUsesDefaultWeight(t *testing.T) {
	params := domain.RoutingParams{
		ThemeWeights: map[domain.Category]float64{domain.CategoryMuseum: 1.0},
	}
	park := domain.CandidatePOI{ID: "p", Category: domain.CategoryPark, Popularity: 1.0}

	assert.InDelta(t, domain.DefaultThemeWeight, Score(park, params), 1e-9)
}

func TestRankByScore_TieBreaksByID(t *testing.T) {
	params := domain.RoutingParams{ThemeWeights: map[domain.Category]float64{}}
	pois := []domain.CandidatePOI{
		{ID: "z", Category: domain.CategoryOther, Popularity: 0.5},
		{ID: "a", Category: domain.CategoryOther, Popularity: 0.5},
		{ID: "m", Category: domain.CategoryOther, Popularity: 0.9},
	}

	ranked := rankByScore(pois, ScoreAll(pois, params))

	assert.Equal(t, "m", ranked[0].ID)
	assert.Equal(t, "a", ranked[1].ID)
	assert.Equal(t, "z", ranked[2].ID)
}
