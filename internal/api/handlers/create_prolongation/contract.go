package create_prolongation

import (
	"context"

	createProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/create_prolongation"
)

type CreateProlongationUseCase interface {
	Execute(ctx context.Context, req *createProlongation.Request) (*createProlongation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
