package reservations

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// ReservationRepository interface du repository réservations
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByVehicleWithFilter(ctx context.Context, filter domain.VehicleReservationsFilter) ([]*domain.Reservation, error)
}

// VehicleRepository interface du repository véhicules
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
