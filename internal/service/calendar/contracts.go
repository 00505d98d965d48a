package calendar

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// VehicleRepository interface du repository véhicules
type VehicleRepository interface {
	GetMatriculation(ctx context.Context, vehicleID int64, plate string) (*domain.Matriculation, error)
	UpdateMatriculationStatus(ctx context.Context, matriculationID int64, status domain.MatriculationStatus) error
	AddUnavailablePeriod(ctx context.Context, period *domain.UnavailablePeriod) (*domain.UnavailablePeriod, error)
	RemoveUnavailablePeriod(ctx context.Context, matriculationID, reservationID int64) error
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
