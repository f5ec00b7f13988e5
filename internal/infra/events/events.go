package events

import "time"

// Ключи маршрутизации событий бронирования
const (
	RoutingReservationCreated   = "reservation.created"
	RoutingReservationCancelled = "reservation.cancelled"
	RoutingRefundProcessed      = "refund.processed"
)

// ReservationCreated событие для отправки подтверждения бронирования
type ReservationCreated struct {
	ReservationID   string    `json:"reservationId"`
	BookingNumber   string    `json:"bookingNumber"`
	CustomerID      string    `json:"customerId"`
	ReservationDate string    `json:"reservationDate"`
	ReservationTime string    `json:"reservationTime"`
	Pax             int       `json:"pax"`
	TotalPrice      int64     `json:"totalPrice"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// ReservationCancelled событие для письма об отмене с суммами комиссии и возврата
type ReservationCancelled struct {
	ReservationID   string    `json:"reservationId"`
	BookingNumber   string    `json:"bookingNumber"`
	CustomerID      string    `json:"customerId"`
	CancelledBy     string    `json:"cancelledBy"`
	TotalPrice      int64     `json:"totalPrice"`
	FeePercentage   int       `json:"feePercentage"`
	CancellationFee int64     `json:"cancellationFee"`
	RefundAmount    int64     `json:"refundAmount"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// RefundProcessed событие о результате возврата
type RefundProcessed struct {
	RefundID      string    `json:"refundId"`
	ReservationID string    `json:"reservationId"`
	BookingNumber string    `json:"bookingNumber"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}
