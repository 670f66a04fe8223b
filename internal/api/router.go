package api

import (
	"net/http"

	"trip-scheduler-service/internal/api/handlers"
	"trip-scheduler-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	pois ports.POIProvider,
	matrices ports.MatrixProvider,
	weather ports.WeatherProvider,
	plans ports.PlanRepository,
) http.Handler {
	mux := http.NewServeMux()

	poiHandler := &handlers.POIHandler{Provider: pois}
	tripHandler := &handlers.TripHandler{
		POIs:     pois,
		Matrices: matrices,
		Weather:  weather,
		Plans:    plans,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/pois", poiHandler.List)
	mux.HandleFunc("/trips", tripHandler.Create)
	mux.HandleFunc("/trips/", tripHandler.Get)

	return loggingMiddleware(mux)
}
