package scheduler

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"trip-scheduler-service/internal/domain"
)

const (
	// Fixed seed keeps cluster assignment reproducible for identical input.
	clusterSeed = 42

	maxKMeansIterations = 25

	// Tolerance below which the candidate pool is treated as spatially
	// degenerate (all points coincident).
	varianceEpsilon = 1e-12
)

// AssignDays partitions candidates into day-sized groups.
//
// The primary path is a seeded k-means on latitude/longitude. Degenerate
// inputs (fewer points than clusters, zero spatial variance) fall back to a
// deterministic round-robin assignment by popularity-sorted order, which
// guarantees every day receives at least one candidate while the pool lasts.
//
// The returned map always has exactly numDays keys (0..numDays-1); days may
// legitimately receive zero candidates when the pool runs out.
func AssignDays(pois []domain.CandidatePOI, numDays int) (map[int][]domain.CandidatePOI, error) {
	if numDays < 1 {
		return nil, errors.New("assign days: numDays must be at least 1")
	}

	byDay := make(map[int][]domain.CandidatePOI, numDays)
	for d := 0; d < numDays; d++ {
		byDay[d] = []domain.CandidatePOI{}
	}
	if len(pois) == 0 {
		return byDay, nil
	}

	k := targetClusterCount(numDays)
	if len(pois) < k || zeroSpatialVariance(pois) {
		for i, p := range rankByPopularity(pois) {
			d := i % numDays
			byDay[d] = append(byDay[d], p)
		}
		return byDay, nil
	}

	clusters := kmeans(pois, k)

	// Largest cluster goes to the earliest day, front-loading richer days
	// when counts are uneven. Ties break by mean popularity, then by the
	// lowest member identifier so the mapping is fully deterministic.
	sort.SliceStable(clusters, func(i, j int) bool {
		if len(clusters[i]) != len(clusters[j]) {
			return len(clusters[i]) > len(clusters[j])
		}
		pi, pj := meanPopularity(clusters[i]), meanPopularity(clusters[j])
		if pi != pj {
			return pi > pj
		}
		return minID(clusters[i]) < minID(clusters[j])
	})

	for i, cluster := range clusters {
		if i >= numDays {
			// More clusters than days: overflow folds back round-robin so
			// every input point stays assigned to exactly one day.
			byDay[i%numDays] = append(byDay[i%numDays], cluster...)
			continue
		}
		byDay[i] = cluster
	}

	return byDay, nil
}

// targetClusterCount clamps numDays into the working cluster range:
// one cluster per day normally, bounded to [3,5] when the day count falls
// outside that range.
func targetClusterCount(numDays int) int {
	upper := numDays
	if upper < 3 {
		upper = 3
	}
	if upper > 5 {
		upper = 5
	}
	k := numDays
	if k > upper {
		k = upper
	}
	if k < 1 {
		k = 1
	}
	return k
}

// zeroSpatialVariance reports whether all candidates are coincident.
func zeroSpatialVariance(pois []domain.CandidatePOI) bool {
	lats := make([]float64, len(pois))
	lons := make([]float64, len(pois))
	for i, p := range pois {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}
	return stat.Variance(lats, nil) < varianceEpsilon &&
		stat.Variance(lons, nil) < varianceEpsilon
}

// kmeans runs a plain iterative centroid assignment on lat/lon with a fixed
// seed. Empty clusters are dropped from the result rather than reseeded;
// callers treat the cluster list as best-effort day groups.
func kmeans(pois []domain.CandidatePOI, k int) [][]domain.CandidatePOI {
	rng := rand.New(rand.NewSource(clusterSeed))

	centroids := make([][2]float64, k)
	for i, pi := range rng.Perm(len(pois))[:k] {
		centroids[i] = [2]float64{pois[pi].Lat, pois[pi].Lon}
	}

	labels := make([]int, len(pois))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range pois {
			best, bestDist := 0, math.MaxFloat64
			for ci, c := range centroids {
				d := sq(p.Lat-c[0]) + sq(p.Lon-c[1])
				if d < bestDist {
					best, bestDist = ci, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][2]float64, k)
		counts := make([]int, k)
		for i, p := range pois {
			sums[labels[i]][0] += p.Lat
			sums[labels[i]][1] += p.Lon
			counts[labels[i]]++
		}
		for ci := range centroids {
			if counts[ci] == 0 {
				continue
			}
			n := float64(counts[ci])
			centroids[ci] = [2]float64{sums[ci][0] / n, sums[ci][1] / n}
		}
	}

	grouped := make([][]domain.CandidatePOI, k)
	for i, p := range pois {
		grouped[labels[i]] = append(grouped[labels[i]], p)
	}

	clusters := make([][]domain.CandidatePOI, 0, k)
	for _, g := range grouped {
		if len(g) > 0 {
			clusters = append(clusters, g)
		}
	}
	return clusters
}

func sq(v float64) float64 { return v * v }

func meanPopularity(pois []domain.CandidatePOI) float64 {
	if len(pois) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pois {
		sum += p.Popularity
	}
	return sum / float64(len(pois))
}

func minID(pois []domain.CandidatePOI) string {
	min := ""
	for _, p := range pois {
		if min == "" || p.ID < min {
			min = p.ID
		}
	}
	return min
}
