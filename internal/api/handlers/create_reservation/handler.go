package create_reservation

import (
	"errors"
	"net/http"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	"github.com/GBTour/GBT-ReservationService/internal/api/middleware"
	"github.com/GBTour/GBT-ReservationService/internal/service/reservations"
	"github.com/GBTour/GBT-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody    = "corps de requête invalide"
	msgMissingUserID         = "identifiant utilisateur manquant"
	msgInvalidDates          = "dates invalides : la date de départ doit précéder strictement la date de retour (format YYYY-MM-DD)"
	msgVehicleNotFound       = "véhicule introuvable"
	msgMatriculationNotFound = "matricule introuvable sur ce véhicule"
	msgInvalidInput          = "données de réservation invalides"
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

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidDates):
			h.logger.Warn("POST /reservations - Invalid dates: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, reservations.ErrVehicleNotFound):
			h.logger.Warn("POST /reservations - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, reservations.ErrMatriculationNotFound):
			h.logger.Warn("POST /reservations - Matriculation not found: vehicle_id=%d, plate=%s", req.VehicleID, req.Plate)
			handlers.RespondNotFound(w, msgMatriculationNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
