package geo

import (
	"math"
	"testing"

	"trip-scheduler-service/internal/domain"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 35.011, lon1: 135.768,
			lat2: 35.011, lon2: 135.768,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "Kyoto Station to Kinkaku-ji (~8km)",
			lat1: 34.9858, lon1: 135.7588,
			lat2: 35.0394, lon2: 135.7292,
			wantKm:    6.5,
			tolerance: 1.0,
		},
		{
			name: "New York to Los Angeles (~3944km)",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 34.0522, lon2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := HaversineKm(35.0, 135.0, 36.0, 136.0)
	d2 := HaversineKm(36.0, 136.0, 35.0, 135.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestFallbackETAMin_ModeSpeeds(t *testing.T) {
	from := domain.CandidatePOI{ID: "a", Lat: 35.00, Lon: 135.00}
	to := domain.CandidatePOI{ID: "b", Lat: 35.00, Lon: 135.05} // ~4.5km apart

	walk := FallbackETAMin(domain.ModeWalk, from, to)
	drive := FallbackETAMin(domain.ModeDrive, from, to)

	if walk <= drive {
		t.Errorf("walking eta (%f) should exceed driving eta (%f)", walk, drive)
	}
	// ~4.5km at 4.5km/h is about an hour on foot.
	if walk < 40 || walk > 80 {
		t.Errorf("walking eta out of plausible range: %f", walk)
	}
}

func TestCentroid(t *testing.T) {
	pois := []domain.CandidatePOI{
		{ID: "a", Lat: 34.0, Lon: 135.0},
		{ID: "b", Lat: 36.0, Lon: 137.0},
	}
	c := Centroid(pois)
	if c.Lat != 35.0 || c.Lon != 136.0 {
		t.Errorf("centroid = %+v, want (35, 136)", c)
	}

	zero := Centroid(nil)
	if zero.Lat != 0 || zero.Lon != 0 {
		t.Errorf("empty centroid should be zero value, got %+v", zero)
	}
}
