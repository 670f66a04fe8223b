// Package geo contains pure geographic computation helpers used by the
// scheduler when the distance matrix has no entry for a POI pair.
package geo

import (
	"math"

	"trip-scheduler-service/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// FallbackETAMin estimates travel time in minutes between two POIs from
// straight-line distance and the mode's average speed. Used whenever the
// distance matrix is missing a pair.
func FallbackETAMin(mode domain.TransportMode, from, to domain.CandidatePOI) float64 {
	km := HaversineKm(from.Lat, from.Lon, to.Lat, to.Lon)
	return km / mode.SpeedKmh() * 60.0
}

// Centroid returns the arithmetic mean position of a POI set.
// The zero value is returned for an empty set.
func Centroid(pois []domain.CandidatePOI) domain.Coordinates {
	if len(pois) == 0 {
		return domain.Coordinates{}
	}
	var lat, lon float64
	for _, p := range pois {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(pois))
	return domain.Coordinates{Lat: lat / n, Lon: lon / n}
}
