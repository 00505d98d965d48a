package excursion_quote

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/service/quotes/models"
)

// QuotesService interface du service de devis
type QuotesService interface {
	ExcursionQuote(ctx context.Context, req *models.ExcursionQuoteRequest) (*models.ExcursionQuoteResponse, error)
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
