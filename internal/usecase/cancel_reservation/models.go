package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// Request модель запроса на отмену
type Request struct {
	ReservationID string
	Actor         domain.Actor
	Reason        *string
}

// Config поведение отмены
type Config struct {
	RefundOnCancel bool // оформлять возврат сразу после отмены оплаченного бронирования
}

// Response результат отмены. Бронирование остается отмененным,
// даже если возврат не прошел: Refund.Status = failed, его можно повторить
type Response struct {
	ReservationID   string
	BookingNumber   string
	Status          string
	CancelledAt     *time.Time
	CancelledBy     *string
	FeePercentage   int
	CancellationFee int64
	RefundAmount    int64
	Refund          *RefundResult // nil, если возврат не требовался
}

// RefundResult итог возврата
type RefundResult struct {
	ID        string
	Amount    int64
	Status    string
	Error     string
	Retryable bool
}
