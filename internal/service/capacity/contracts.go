package capacity

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// SlotRepository атомарные операции над current_pax
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	IncrementPax(ctx context.Context, id uuid.UUID, pax int) (*domain.Slot, error)
	DecrementPax(ctx context.Context, id uuid.UUID, pax int) (*domain.Slot, error)
	ResetPax(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
}

// Metrics счетчики операций с вместимостью
type Metrics interface {
	IncCapacityOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
