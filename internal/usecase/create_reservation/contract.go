package create_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// CourseRepository интерфейс репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
}

// CapacityService резервирование мест в слоте
type CapacityService interface {
	Reserve(ctx context.Context, slotID uuid.UUID, pax int) (*domain.Slot, error)
}

// EventPublisher публикация событий для сервисов уведомлений
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event events.ReservationCreated) error
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
