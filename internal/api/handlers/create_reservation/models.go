package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	createReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CourseID  string  `json:"courseId"`
	SlotID    string  `json:"slotId"`
	Pax       int     `json:"pax"`
	PaymentID *string `json:"paymentId,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              string `json:"id"`
	BookingNumber   string `json:"bookingNumber"`
	CustomerID      string `json:"customerId"`
	CourseID        string `json:"courseId"`
	SlotID          string `json:"slotId"`
	ReservationDate string `json:"reservationDate"`
	ReservationTime string `json:"reservationTime"`
	Pax             int    `json:"pax"`
	Subtotal        int64  `json:"subtotal"`
	Tax             int64  `json:"tax"`
	TotalPrice      int64  `json:"totalPrice"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`
	AvailablePax    int    `json:"availablePax"`
	CreatedAt       string `json:"createdAt"`
}

// InsufficientCapacityResponse 409 с числом оставшихся мест
type InsufficientCapacityResponse struct {
	Error        string `json:"error"`
	AvailablePax int    `json:"availablePax"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID string) *createReservation.Request {
	return &createReservation.Request{
		CustomerID: customerID,
		CourseID:   r.CourseID,
		SlotID:     r.SlotID,
		Pax:        r.Pax,
		PaymentID:  r.PaymentID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID.String(),
		BookingNumber:   resp.BookingNumber,
		CustomerID:      resp.CustomerID,
		CourseID:        resp.CourseID.String(),
		SlotID:          resp.SlotID.String(),
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		ReservationTime: resp.ReservationTime.String(),
		Pax:             resp.Pax,
		Subtotal:        resp.Subtotal,
		Tax:             resp.Tax,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		AvailablePax:    resp.AvailablePax,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
