package delete_reservation

import (
	"context"

	deleteReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/delete_reservation"
)

type DeleteReservationUseCase interface {
	Execute(ctx context.Context, req *deleteReservation.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
