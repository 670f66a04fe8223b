package dto

type POIResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Category    string  `json:"category"`
	Popularity  float64 `json:"popularity"`
	MinDwellMin int     `json:"min_dwell_min"`
	Source      string  `json:"source,omitempty"`
}

type ListPOIResponse struct {
	POIs []POIResponse `json:"pois"`
}
