package get_vehicle_reservations

import (
	"context"

	"github.com/GBTour/GBT-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetVehicleReservations(ctx context.Context, req *models.GetVehicleReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
