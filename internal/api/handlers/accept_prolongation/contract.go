package accept_prolongation

import (
	"context"

	acceptProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/accept_prolongation"
)

type AcceptProlongationUseCase interface {
	Execute(ctx context.Context, req *acceptProlongation.Request) (*acceptProlongation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
