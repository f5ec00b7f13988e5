package get_cancellation_quote

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// Request модель запроса расчета комиссии
type Request struct {
	ReservationID string
	Actor         domain.Actor
}

// Response расчет комиссии на текущий момент
type Response struct {
	ReservationID   string
	BookingNumber   string
	ReservationDate time.Time
	Status          string
	TotalPrice      int64
	FeePercentage   int
	CancellationFee int64
	RefundAmount    int64
	DaysUntil       int
	CanCancel       bool // false, если дата полета прошла или статус не допускает отмену
}
