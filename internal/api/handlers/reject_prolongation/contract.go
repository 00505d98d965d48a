package reject_prolongation

import (
	"context"

	rejectProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/reject_prolongation"
)

type RejectProlongationUseCase interface {
	Execute(ctx context.Context, req *rejectProlongation.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
