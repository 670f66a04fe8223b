package domain

import "time"

// Category classifies a point of interest for theme-based scoring.
type Category string

const (
	CategoryMuseum    Category = "museum"
	CategoryFood      Category = "food"
	CategoryPark      Category = "park"
	CategoryViewpoint Category = "viewpoint"
	CategoryOther     Category = "other"
)

// ParseCategory maps free-form provider categories onto the known set.
// Unknown values fall back to CategoryOther rather than failing.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryMuseum, CategoryFood, CategoryPark, CategoryViewpoint:
		return Category(s)
	default:
		return CategoryOther
	}
}

// POISource records where a candidate was fetched from.
type POISource struct {
	Name      string
	URL       string
	FetchedAt time.Time
}

// Represents a single visitable place considered for scheduling.
// A CandidatePOI is immutable once fetched; the planning pipeline owns it
// for the duration of one run and never mutates it.
type CandidatePOI struct {
	ID          string
	Name        string
	Lat         float64
	Lon         float64
	Category    Category
	Popularity  float64
	MinDwellMin int
	Source      POISource
}

// Coordinates returns the POI position in the shared coordinate shape.
func (p CandidatePOI) Coordinates() Coordinates {
	return Coordinates{Lon: p.Lon, Lat: p.Lat}
}
