package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-scheduler-service/internal/adapters/repositories"
	"trip-scheduler-service/internal/api/dto"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
	"trip-scheduler-service/internal/services"
)

type TripHandler struct {
	POIs     ports.POIProvider
	Matrices ports.MatrixProvider
	Weather  ports.WeatherProvider
	Plans    ports.PlanRepository
}

// Create builds a multi-day itinerary from the request preferences.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}

	if req.NumDays < 1 || req.NumDays > 14 {
		writeError(w, r, http.StatusBadRequest, "num_days must be between 1 and 14")
		return
	}
	if req.MaxPOIs < 0 || req.MaxPOIs > 200 {
		writeError(w, r, http.StatusBadRequest, "max_pois must be between 0 and 200")
		return
	}

	svcReq := services.PlanTripRequest{
		City:      city,
		StartDate: start,
		NumDays:   req.NumDays,
		Pace:      req.Pace,
		Themes:    req.Themes,
		Mode:      domain.ParseTransportMode(req.TransportMode),
		MaxPOIs:   req.MaxPOIs,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.POIs, h.Matrices, h.Weather, h.Plans)
	if err != nil {
		slog.Error("plan trip failed", "city", city, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, tripResponse(plan))
}

// Get returns a previously created plan by its id.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/trips/")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.Plans.GetPlan(r.Context(), id)
	if errors.Is(err, repositories.ErrPlanNotFound) || (err == nil && plan == nil) {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		slog.Error("get plan failed", "plan_id", id, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, tripResponse(plan))
}

func tripResponse(plan *domain.TripPlan) dto.TripResponse {
	res := dto.TripResponse{
		PlanID:    plan.ID.String(),
		City:      plan.City,
		Days:      make([]dto.DayPlanResponse, 0, len(plan.Days)),
		Sources:   plan.Sources,
		CreatedAt: plan.CreatedAt,
	}

	for _, day := range plan.Days {
		slots := make([]dto.SlotResponse, 0, len(day.Slots))
		for _, s := range day.Slots {
			slot := dto.SlotResponse{
				Start: s.Start,
				End:   s.End,
				Kind:  string(s.Kind),
				POIID: s.POIID,
			}
			if s.Transport != nil {
				slot.Transport = &dto.TransportResponse{
					Mode:   string(s.Transport.Mode),
					ETAMin: s.Transport.ETAMin,
				}
			}
			slots = append(slots, slot)
		}

		res.Days = append(res.Days, dto.DayPlanResponse{
			Date:            day.Date.Format("2006-01-02"),
			Slots:           slots,
			DayTotalTimeMin: day.DayTotalTimeMin,
			TransitShare:    day.TransitShare,
		})
	}

	return res
}
