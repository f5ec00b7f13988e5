package change_slot_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

type SlotService interface {
	Close(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	Reopen(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	Suspend(ctx context.Context, id uuid.UUID, reason string) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
