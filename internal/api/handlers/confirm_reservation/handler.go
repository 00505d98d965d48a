package confirm_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	confirmReservation "github.com/GBTour/GBT-ReservationService/internal/usecase/confirm_reservation"
)

const (
	msgInvalidReservationID     = "identifiant de réservation invalide"
	msgNotFound                 = "réservation introuvable"
	msgMatriculationNotFound    = "matricule introuvable sur ce véhicule"
	msgMatriculationUnavailable = "matricule indisponible (maintenance)"
	msgDateConflict             = "les dates demandées chevauchent une réservation existante"
	msgInvalidTransition        = "la réservation ne peut pas être confirmée depuis son statut actuel"
	msgPaymentRequired          = "un pourcentage de paiement est requis pour confirmer"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{ReservationID: reservationID})
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrMatriculationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Matriculation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgMatriculationNotFound)

		case errors.Is(err, confirmReservation.ErrMatriculationUnavailable):
			h.logger.Warn("POST /reservations/{id}/confirm - Matriculation unavailable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgMatriculationUnavailable)

		case errors.Is(err, confirmReservation.ErrDateConflict):
			h.logger.Warn("POST /reservations/{id}/confirm - Date conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, confirmReservation.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, confirmReservation.ErrPaymentRequired):
			h.logger.Warn("POST /reservations/{id}/confirm - Payment required: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgPaymentRequired)

		case errors.Is(err, confirmReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Reservation confirmed: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
