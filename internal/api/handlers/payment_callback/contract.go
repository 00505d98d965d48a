package payment_callback

import (
	"context"

	confirmPayment "github.com/GBTour/GBT-ReservationService/internal/usecase/confirm_prolongation_payment"
)

// ConfirmPaymentUseCase interface du usecase de confirmation de paiement
type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, req *confirmPayment.Request) error
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
