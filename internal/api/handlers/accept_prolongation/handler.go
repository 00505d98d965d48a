package accept_prolongation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	acceptProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/accept_prolongation"
)

const (
	msgInvalidProlongationID   = "identifiant de prolongation invalide"
	msgInvalidRequestBody      = "corps de requête invalide"
	msgNotFound                = "prolongation introuvable"
	msgReservationNotFound     = "réservation introuvable"
	msgInvalidTransition       = "la prolongation n'est plus en attente"
	msgReservationNotConfirmed = "la réservation n'est plus confirmée, la prolongation ne peut pas être appliquée"
	msgInvalidPaymentMethod    = "mode de paiement invalide, attendu en_agence ou par_carte"
	msgDateConflict            = "l'intervalle prolongé chevauche une réservation existante"
	msgMatriculationNotFound   = "matricule introuvable sur ce véhicule"
	msgGatewayUnavailable      = "passerelle de paiement indisponible, réessayez plus tard"
)

type Handler struct {
	useCase AcceptProlongationUseCase
	logger  Logger
}

func NewHandler(useCase AcceptProlongationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/prolongations/{prolongationId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	prolongationID, err := strconv.ParseInt(vars["prolongationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /prolongations/{id}/accept - Invalid prolongation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProlongationID)
		return
	}

	var req AcceptProlongationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /prolongations/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptProlongation.Request{
		ProlongationID: prolongationID,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptProlongation.ErrProlongationNotFound):
			h.logger.Warn("POST /prolongations/{id}/accept - Not found: prolongation_id=%d", prolongationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptProlongation.ErrReservationNotFound):
			h.logger.Warn("POST /prolongations/{id}/accept - Reservation not found: prolongation_id=%d", prolongationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, acceptProlongation.ErrInvalidTransition):
			h.logger.Warn("POST /prolongations/{id}/accept - Invalid transition: prolongation_id=%d", prolongationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, acceptProlongation.ErrReservationNotConfirmed):
			h.logger.Warn("POST /prolongations/{id}/accept - Reservation no longer confirmed: prolongation_id=%d", prolongationID)
			handlers.RespondError(w, http.StatusConflict, msgReservationNotConfirmed)

		case errors.Is(err, acceptProlongation.ErrInvalidPaymentMethod):
			h.logger.Warn("POST /prolongations/{id}/accept - Invalid payment method: prolongation_id=%d", prolongationID)
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

		case errors.Is(err, acceptProlongation.ErrDateConflict):
			h.logger.Warn("POST /prolongations/{id}/accept - Date conflict: prolongation_id=%d", prolongationID)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, acceptProlongation.ErrMatriculationNotFound):
			h.logger.Warn("POST /prolongations/{id}/accept - Matriculation not found: prolongation_id=%d", prolongationID)
			handlers.RespondNotFound(w, msgMatriculationNotFound)

		case errors.Is(err, acceptProlongation.ErrGatewayAuth), errors.Is(err, acceptProlongation.ErrGatewayUnavailable):
			h.logger.Error("POST /prolongations/{id}/accept - Gateway error: prolongation_id=%d, error=%v", prolongationID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		case errors.Is(err, acceptProlongation.ErrInvalidInput):
			h.logger.Warn("POST /prolongations/{id}/accept - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProlongationID)

		default:
			h.logger.Error("POST /prolongations/{id}/accept - Failed: prolongation_id=%d, error=%v", prolongationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /prolongations/{id}/accept - Prolongation accepted: prolongation_id=%d, status=%s",
		prolongationID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
