package refunds

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	refundRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/refund"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/opsnotifier"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/paymentgateway"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error
}

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
	SaveResult(ctx context.Context, id uuid.UUID, params refundRepo.ResultParams) error
	SumRefunded(ctx context.Context, reservationID uuid.UUID) (int64, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreateRefund(ctx context.Context, paymentID string, amount int64, idempotencyKey string) (*paymentgateway.Refund, error)
}

// Notifier оповещения операторов
type Notifier interface {
	NotifyRefundFailed(ctx context.Context, alert opsnotifier.RefundAlert) error
}

// EventPublisher публикация событий для сервисов уведомлений
type EventPublisher interface {
	PublishRefundProcessed(ctx context.Context, event events.RefundProcessed) error
}

// Metrics счетчики возвратов
type Metrics interface {
	IncRefund(status string)
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
