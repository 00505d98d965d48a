package get_vehicle_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/internal/service/reservations"
	"github.com/GBTour/GBT-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidVehicleID = "identifiant de véhicule invalide"
	msgInvalidFilter    = "filtre invalide : statut inconnu ou dates mal formées (YYYY-MM-DD)"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/reservations?plate=&startDate=&endDate=&status=&includeTerminal=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vehicleID, err := strconv.ParseInt(vars["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vehicles/{id}/reservations - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	req := &models.GetVehicleReservationsRequest{VehicleID: vehicleID}

	query := r.URL.Query()
	if plate := query.Get("plate"); plate != "" {
		req.Plate = &plate
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if raw := query.Get("startDate"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /vehicles/{id}/reservations - Invalid start date %q", raw)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &date
	}
	if raw := query.Get("endDate"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /vehicles/{id}/reservations - Invalid end date %q", raw)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &date
	}
	req.IncludeTerminal = query.Get("includeTerminal") == "true"

	result, err := h.service.GetVehicleReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /vehicles/{id}/reservations - Invalid filter: vehicle_id=%d", vehicleID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /vehicles/{id}/reservations - Failed: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles/{id}/reservations - %d reservation(s) retrieved: vehicle_id=%d", result.Total, vehicleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
