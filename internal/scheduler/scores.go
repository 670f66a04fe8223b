package scheduler

import (
	"sort"

	"trip-scheduler-service/internal/domain"
)

// Score rates a candidate by popularity weighted by theme preference.
func Score(p domain.CandidatePOI, params domain.RoutingParams) float64 {
	return p.Popularity * params.ThemeWeight(p.Category)
}

// ScoreAll computes the score for every candidate, keyed by POI identifier.
func ScoreAll(pois []domain.CandidatePOI, params domain.RoutingParams) map[string]float64 {
	scores := make(map[string]float64, len(pois))
	for _, p := range pois {
		scores[p.ID] = Score(p, params)
	}
	return scores
}

// rankByScore returns a copy of pois sorted by descending score, with ties
// broken by ascending POI identifier so the ordering is deterministic.
func rankByScore(pois []domain.CandidatePOI, scores map[string]float64) []domain.CandidatePOI {
	ranked := make([]domain.CandidatePOI, len(pois))
	copy(ranked, pois)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// rankByPopularity sorts a copy of pois by descending popularity, ties by
// ascending identifier. Used by the round-robin clustering fallback.
func rankByPopularity(pois []domain.CandidatePOI) []domain.CandidatePOI {
	ranked := make([]domain.CandidatePOI, len(pois))
	copy(ranked, pois)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Popularity != ranked[j].Popularity {
			return ranked[i].Popularity > ranked[j].Popularity
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
