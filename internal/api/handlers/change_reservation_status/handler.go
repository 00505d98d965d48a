package change_reservation_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	changeStatus "github.com/GBTour/GBT-ReservationService/internal/usecase/change_reservation_status"
)

const (
	msgInvalidReservationID     = "identifiant de réservation invalide"
	msgInvalidRequestBody       = "corps de requête invalide"
	msgNotFound                 = "réservation introuvable"
	msgVehicleNotFound          = "véhicule introuvable"
	msgMatriculationNotFound    = "matricule introuvable sur ce véhicule"
	msgMatriculationUnavailable = "matricule indisponible (maintenance)"
	msgDateConflict             = "les dates demandées chevauchent une réservation existante"
	msgInvalidTransition        = "transition de statut interdite"
	msgInvalidStatus            = "statut de réservation inconnu"
	msgInvalidDates             = "dates invalides : la date de départ doit précéder strictement la date de retour"
	msgPaymentRequired          = "un pourcentage de paiement est requis pour ce statut"
	msgInvalidInput             = "données de requête invalides"
)

type Handler struct {
	useCase ChangeReservationStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeReservationStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrVehicleNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Vehicle not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, changeStatus.ErrMatriculationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Matriculation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgMatriculationNotFound)

		case errors.Is(err, changeStatus.ErrMatriculationUnavailable):
			h.logger.Warn("PATCH /reservations/{id}/status - Matriculation unavailable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgMatriculationUnavailable)

		case errors.Is(err, changeStatus.ErrDateConflict):
			h.logger.Warn("PATCH /reservations/{id}/status - Date conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, changeStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, changeStatus.ErrInvalidDates):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid dates: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, changeStatus.ErrPaymentRequired):
			h.logger.Warn("PATCH /reservations/{id}/status - Payment required: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgPaymentRequired)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Reservation updated: reservation_id=%d, status=%s",
		reservationID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
