package payment_callback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	confirmPayment "github.com/GBTour/GBT-ReservationService/internal/usecase/confirm_prolongation_payment"
)

const (
	msgInvalidParams       = "paramètres de callback invalides"
	msgNotFound            = "prolongation introuvable"
	msgNotAwaitingPayment  = "la prolongation n'attend pas de paiement"
	msgPaymentExpired      = "le lien de paiement a expiré"
	msgPaymentNotCompleted = "le paiement n'est pas confirmé par la passerelle"
	msgPaymentMismatch     = "les informations de paiement ne correspondent pas"
	msgDateConflict        = "conflit de dates détecté après paiement, réconciliation manuelle requise"
	msgNotConfirmed        = "la réservation n'est plus confirmée, réconciliation manuelle requise"
	msgGatewayUnavailable  = "passerelle de paiement indisponible"
	msgPaymentConfirmed    = "paiement confirmé"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/prolongations/payment/callback
//
// Appelé par la passerelle de paiement après le règlement d'une
// prolongation. Le statut renvoyé fait foi côté passerelle : le usecase
// revérifie le paiement auprès d'elle avant toute mutation.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	orderID := query.Get("order_id")
	paymentRef := query.Get("payment_ref")
	prolongationID, err := strconv.ParseInt(query.Get("prolongation_id"), 10, 64)
	if err != nil || orderID == "" || paymentRef == "" {
		h.logger.Warn("GET /prolongations/payment/callback - Invalid params: order_id=%q, prolongation_id=%q", orderID, query.Get("prolongation_id"))
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	err = h.useCase.Execute(r.Context(), &confirmPayment.Request{
		ProlongationID: prolongationID,
		OrderID:        orderID,
		PaymentRef:     paymentRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrProlongationNotFound):
			h.logger.Warn("GET /prolongations/payment/callback - Not found: prolongation_id=%d, order_id=%s", prolongationID, orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrNotAwaitingPayment):
			h.logger.Warn("GET /prolongations/payment/callback - Not awaiting payment: prolongation_id=%d", prolongationID)
			handlers.RespondBadRequest(w, msgNotAwaitingPayment)

		case errors.Is(err, confirmPayment.ErrPaymentExpired):
			h.logger.Warn("GET /prolongations/payment/callback - Payment link expired: prolongation_id=%d", prolongationID)
			handlers.RespondBadRequest(w, msgPaymentExpired)

		case errors.Is(err, confirmPayment.ErrPaymentNotCompleted):
			h.logger.Warn("GET /prolongations/payment/callback - Payment not completed: prolongation_id=%d, order_id=%s", prolongationID, orderID)
			handlers.RespondBadRequest(w, msgPaymentNotCompleted)

		case errors.Is(err, confirmPayment.ErrOrderIDMismatch),
			errors.Is(err, confirmPayment.ErrPaymentAmountMismatch):
			h.logger.Error("GET /prolongations/payment/callback - Payment mismatch: prolongation_id=%d, order_id=%s, error=%v", prolongationID, orderID, err)
			handlers.RespondBadRequest(w, msgPaymentMismatch)

		case errors.Is(err, confirmPayment.ErrDateConflict):
			h.logger.Error("GET /prolongations/payment/callback - Date conflict after payment: prolongation_id=%d, order_id=%s", prolongationID, orderID)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, confirmPayment.ErrReservationNotConfirmed):
			h.logger.Error("GET /prolongations/payment/callback - Reservation no longer confirmed: prolongation_id=%d, order_id=%s", prolongationID, orderID)
			handlers.RespondError(w, http.StatusConflict, msgNotConfirmed)

		case errors.Is(err, confirmPayment.ErrGatewayUnavailable),
			errors.Is(err, confirmPayment.ErrGatewayAuth):
			h.logger.Error("GET /prolongations/payment/callback - Gateway error: prolongation_id=%d, error=%v", prolongationID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("GET /prolongations/payment/callback - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /prolongations/payment/callback - Failed: prolongation_id=%d, error=%v", prolongationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /prolongations/payment/callback - Payment confirmed: prolongation_id=%d, order_id=%s", prolongationID, orderID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgPaymentConfirmed})
}
