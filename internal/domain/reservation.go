package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusNoShow    ReservationStatus = "no_show"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

// Reservation represents a booking of pax seats on one slot
// Денежные суммы в иенах, целые
type Reservation struct {
	ID              uuid.UUID
	BookingNumber   string
	CustomerID      string
	CourseID        uuid.UUID
	SlotID          uuid.UUID
	ReservationDate time.Time
	ReservationTime types.TimeString
	Pax             int

	Subtotal   int64
	Tax        int64
	TotalPrice int64

	Status        ReservationStatus
	PaymentStatus PaymentStatus
	PaymentID     *string // ссылка на платеж в платежном шлюзе

	CancelledAt        *time.Time
	CancelledBy        *string
	CancellationReason *string
	CancellationFee    *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}

// HoldsCapacity returns true if the reservation's pax are counted in slot.current_pax
func (r *Reservation) HoldsCapacity() bool {
	return !r.IsCancelled()
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// CanBeDeleted returns true if an operator may delete the reservation
func (r *Reservation) CanBeDeleted() bool {
	return r.Status != ReservationStatusCompleted
}

// IsPaid returns true if money was captured and at least part of it was not returned
func (r *Reservation) IsPaid() bool {
	return r.PaymentStatus == PaymentStatusPaid || r.PaymentStatus == PaymentStatusPartialRefund
}

// IsOwnedBy returns true if the reservation belongs to the customer
func (r *Reservation) IsOwnedBy(customerID string) bool {
	return customerID != "" && r.CustomerID == customerID
}

// Price разбивка стоимости бронирования
type Price struct {
	Subtotal   int64
	Tax        int64
	TotalPrice int64
}

// CalculatePrice subtotal = price*pax, tax = floor(subtotal*taxPercent/100), total = subtotal+tax
func CalculatePrice(coursePrice int64, pax int, taxPercent int) Price {
	subtotal := coursePrice * int64(pax)
	tax := subtotal * int64(taxPercent) / 100
	return Price{
		Subtotal:   subtotal,
		Tax:        tax,
		TotalPrice: subtotal + tax,
	}
}

// NewBookingNumber формирует номер бронирования вида HT-20240615-1A2B3C
func NewBookingNumber(prefix string, date time.Time, id uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, date.Format("20060102"), suffix)
}
