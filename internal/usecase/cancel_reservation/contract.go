package cancel_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	"github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
}

// CancellationService расчет и применение отмены
type CancellationService interface {
	Quote(ctx context.Context, res *domain.Reservation) (*domain.CancellationQuote, error)
	Apply(ctx context.Context, res *domain.Reservation, quote domain.CancellationQuote, cancelledBy string, reason *string) (*domain.Reservation, error)
}

// RefundService возврат денег после отмены
type RefundService interface {
	Issue(ctx context.Context, req refunds.IssueRequest) (*domain.Refund, error)
}

// EventPublisher публикация событий для сервисов уведомлений
type EventPublisher interface {
	PublishReservationCancelled(ctx context.Context, event events.ReservationCancelled) error
}

// Metrics счетчики отмен
type Metrics interface {
	IncCancellation(actor string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
