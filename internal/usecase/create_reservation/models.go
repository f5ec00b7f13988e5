package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID string  // ID клиента (из заголовка X-User-ID)
	CourseID   string  // UUID курса
	SlotID     string  // UUID слота
	Pax        int     // Количество пассажиров
	PaymentID  *string // Платеж, уже проведенный на стороне Stripe Checkout (опционально)
}

// Config бизнес-настройки бронирования
type Config struct {
	TaxPercent          int
	BookingNumberPrefix string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              uuid.UUID
	BookingNumber   string
	CustomerID      string
	CourseID        uuid.UUID
	SlotID          uuid.UUID
	ReservationDate time.Time
	ReservationTime types.TimeString
	Pax             int
	Subtotal        int64
	Tax             int64
	TotalPrice      int64
	Status          string
	PaymentStatus   string
	AvailablePax    int // Свободно мест в слоте после бронирования
	CreatedAt       time.Time
}

type parsedRequest struct {
	courseID uuid.UUID
	slotID   uuid.UUID
}
