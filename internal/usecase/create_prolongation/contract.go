package create_prolongation

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// ReservationRepository interface du repository réservations
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// VehicleRepository interface du repository véhicules
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// ProlongationRepository interface du repository des prolongations
type ProlongationRepository interface {
	Create(ctx context.Context, p *domain.ProlongationRequest) (*domain.ProlongationRequest, error)
	GetPendingByReservation(ctx context.Context, reservationID int64) ([]*domain.ProlongationRequest, error)
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
