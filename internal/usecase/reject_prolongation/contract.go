package reject_prolongation

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
)

// ProlongationRepository interface du repository des prolongations
type ProlongationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ProlongationRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ProlongationStatus) error
}

// ReservationRepository interface du repository réservations
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// NotificationClient interface du client de notifications
type NotificationClient interface {
	SendAsync(event notifservice.Event)
}

// TransactionManager interface de gestion des transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
