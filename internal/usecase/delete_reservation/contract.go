package delete_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CapacityService освобождение мест в слоте
type CapacityService interface {
	Release(ctx context.Context, slotID uuid.UUID, pax int) (*domain.Slot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
