package get_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/reservations"
)

type ReservationService interface {
	GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*reservations.Details, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
