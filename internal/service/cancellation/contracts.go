package cancellation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
)

// PolicyRepository интерфейс репозитория политики отмены
type PolicyRepository interface {
	ListActive(ctx context.Context) ([]domain.CancellationPolicyTier, error)
}

// PolicyCache кеш активной политики, может отсутствовать
type PolicyCache interface {
	Get(ctx context.Context) ([]domain.CancellationPolicyTier, bool)
	Set(ctx context.Context, tiers []domain.CancellationPolicyTier)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Cancel(ctx context.Context, id uuid.UUID, params reservationRepo.CancelParams) (*domain.Reservation, error)
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
