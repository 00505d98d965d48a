package create_prolongation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	createProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/create_prolongation"
)

const (
	msgInvalidReservationID = "identifiant de réservation invalide"
	msgInvalidRequestBody   = "corps de requête invalide"
	msgNotFound             = "réservation introuvable"
	msgVehicleNotFound      = "véhicule introuvable"
	msgNotProlongable       = "la réservation ne peut pas être prolongée depuis son statut actuel"
	msgInvalidNewDropoff    = "la nouvelle date de retour doit être strictement après la date de retour actuelle"
	msgInvalidReduction     = "la réduction demandée ne correspond pas au barème long séjour"
	msgAlreadyPending       = "une prolongation est déjà en attente pour cette réservation"
	msgInvalidInput         = "données de prolongation invalides"
)

type Handler struct {
	useCase CreateProlongationUseCase
	logger  Logger
}

func NewHandler(useCase CreateProlongationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/prolongations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/prolongations - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req CreateProlongationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/prolongations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createProlongation.Request{
		ReservationID:  reservationID,
		NewDropoffDate: req.NewDropoffDate,
		Reduction:      req.Reduction,
	})
	if err != nil {
		switch {
		case errors.Is(err, createProlongation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/prolongations - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createProlongation.ErrVehicleNotFound):
			h.logger.Warn("POST /reservations/{id}/prolongations - Vehicle not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createProlongation.ErrReservationNotProlongable):
			h.logger.Warn("POST /reservations/{id}/prolongations - Not prolongable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNotProlongable)

		case errors.Is(err, createProlongation.ErrInvalidNewDropoff):
			h.logger.Warn("POST /reservations/{id}/prolongations - Invalid new dropoff: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidNewDropoff)

		case errors.Is(err, createProlongation.ErrInvalidReduction):
			h.logger.Warn("POST /reservations/{id}/prolongations - Invalid reduction: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidReduction)

		case errors.Is(err, createProlongation.ErrAlreadyPending):
			h.logger.Warn("POST /reservations/{id}/prolongations - Already pending: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPending)

		case errors.Is(err, createProlongation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/prolongations - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/prolongations - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/prolongations - Prolongation created: prolongation_id=%d, reservation_id=%d",
		result.ID, reservationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
