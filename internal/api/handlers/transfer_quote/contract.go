package transfer_quote

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/service/quotes/models"
)

// QuotesService interface du service de devis
type QuotesService interface {
	TransferQuote(ctx context.Context, req *models.TransferQuoteRequest) (*models.TransferQuoteResponse, error)
	ListDestinations(ctx context.Context, departure string) (*models.DestinationsResponse, error)
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
