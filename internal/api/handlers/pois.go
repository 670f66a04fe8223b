package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"trip-scheduler-service/internal/api/dto"
	"trip-scheduler-service/internal/ports"
)

type POIHandler struct {
	Provider ports.POIProvider
}

// List returns the candidate catalog for a city, optionally filtered by theme.
func (h *POIHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	var themes []string
	if raw := strings.TrimSpace(r.URL.Query().Get("themes")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				themes = append(themes, t)
			}
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	pois, err := h.Provider.Search(r.Context(), city, themes, limit)
	if err != nil {
		slog.Error("poi search failed", "city", city, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPOIResponse{POIs: make([]dto.POIResponse, 0, len(pois))}
	for _, p := range pois {
		res.POIs = append(res.POIs, dto.POIResponse{
			ID:          p.ID,
			Name:        p.Name,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Category:    string(p.Category),
			Popularity:  p.Popularity,
			MinDwellMin: p.MinDwellMin,
			Source:      p.Source.Name,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
