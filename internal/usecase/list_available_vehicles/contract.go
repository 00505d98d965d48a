package list_available_vehicles

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// VehicleRepository interface du repository véhicules
type VehicleRepository interface {
	List(ctx context.Context) ([]*domain.Vehicle, error)
}

// FleetCache cache de lecture de la flotte. Optionnel : un cache nil
// est toléré, le repository est alors interrogé directement.
type FleetCache interface {
	GetFleet(ctx context.Context) ([]*domain.Vehicle, error)
	SetFleet(ctx context.Context, vehicles []*domain.Vehicle) error
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
