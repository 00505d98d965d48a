package quotes

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// CatalogRepository interface du repository catalogue
type CatalogRepository interface {
	GetTransferRoute(ctx context.Context, departure, destination string) (*domain.TransferRoute, error)
	ListDestinations(ctx context.Context, departure string) ([]string, error)
	GetExcursion(ctx context.Context, id int64) (*domain.Excursion, error)
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
