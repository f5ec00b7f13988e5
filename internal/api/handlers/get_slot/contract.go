package get_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

type SlotService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
