package list_available_vehicles

import (
	"context"

	listVehicles "github.com/GBTour/GBT-ReservationService/internal/usecase/list_available_vehicles"
)

// ListAvailableVehiclesUseCase interface du usecase de recherche de
// véhicules disponibles
type ListAvailableVehiclesUseCase interface {
	Execute(ctx context.Context, req *listVehicles.Request) (*listVehicles.Response, error)
}

// Logger interface de journalisation
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
