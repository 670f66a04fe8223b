package domain

// DistanceMatrix holds estimated travel times in minutes between POI pairs
// for a single transport mode. The matrix is sparse: a missing pair is not an
// error, callers are expected to fall back to a distance-based estimate.
//
// Entries are keyed by the unordered pair of POI identifiers, so Lookup
// treats (A,B) and (B,A) as equivalent.
type DistanceMatrix struct {
	Mode TransportMode
	etas map[string]float64
}

func NewDistanceMatrix(mode TransportMode) *DistanceMatrix {
	return &DistanceMatrix{Mode: mode, etas: make(map[string]float64)}
}

// pairKey builds a canonical key for the unordered (a, b) pair.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Set records the estimated travel time in minutes between two POIs.
// Negative etas are ignored; the matrix only holds valid estimates.
func (m *DistanceMatrix) Set(a, b string, etaMin float64) {
	if a == b || etaMin < 0 {
		return
	}
	m.etas[pairKey(a, b)] = etaMin
}

// Lookup returns the estimated travel time in minutes between two POIs.
// The second return value reports whether the pair is present.
func (m *DistanceMatrix) Lookup(a, b string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	eta, ok := m.etas[pairKey(a, b)]
	return eta, ok
}

// Len returns the number of stored pairs.
func (m *DistanceMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.etas)
}
