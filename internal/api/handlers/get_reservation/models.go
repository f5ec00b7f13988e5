package get_reservation

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/reservations"
)

// RefundResponse запись о возврате
type RefundResponse struct {
	ID             string  `json:"id"`
	Amount         int64   `json:"amount"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	StripeRefundID *string `json:"stripeRefundId"`
	FailureReason  *string `json:"failureReason"`
	CreatedAt      string  `json:"createdAt"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                 string           `json:"id"`
	BookingNumber      string           `json:"bookingNumber"`
	CustomerID         string           `json:"customerId"`
	CourseID           string           `json:"courseId"`
	SlotID             string           `json:"slotId"`
	ReservationDate    string           `json:"reservationDate"`
	ReservationTime    string           `json:"reservationTime"`
	Pax                int              `json:"pax"`
	Subtotal           int64            `json:"subtotal"`
	Tax                int64            `json:"tax"`
	TotalPrice         int64            `json:"totalPrice"`
	Status             string           `json:"status"`
	PaymentStatus      string           `json:"paymentStatus"`
	CancelledAt        *string          `json:"cancelledAt"`
	CancellationReason *string          `json:"cancellationReason"`
	CancellationFee    *int64           `json:"cancellationFee"`
	Refunds            []RefundResponse `json:"refunds"`
	CreatedAt          string           `json:"createdAt"`
}

// FromDetails конвертирует бронирование в HTTP response
func FromDetails(d *reservations.Details) *ReservationResponse {
	res := d.Reservation
	out := &ReservationResponse{
		ID:                 res.ID.String(),
		BookingNumber:      res.BookingNumber,
		CustomerID:         res.CustomerID,
		CourseID:           res.CourseID.String(),
		SlotID:             res.SlotID.String(),
		ReservationDate:    res.ReservationDate.Format(domain.DateFormat),
		ReservationTime:    res.ReservationTime.String(),
		Pax:                res.Pax,
		Subtotal:           res.Subtotal,
		Tax:                res.Tax,
		TotalPrice:         res.TotalPrice,
		Status:             string(res.Status),
		PaymentStatus:      string(res.PaymentStatus),
		CancellationReason: res.CancellationReason,
		CancellationFee:    res.CancellationFee,
		Refunds:            make([]RefundResponse, 0, len(d.Refunds)),
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
	}

	if res.CancelledAt != nil {
		cancelledAt := res.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}

	for _, r := range d.Refunds {
		out.Refunds = append(out.Refunds, RefundResponse{
			ID:             r.ID.String(),
			Amount:         r.Amount,
			Reason:         string(r.Reason),
			Status:         string(r.Status),
			StripeRefundID: r.StripeRefundID,
			FailureReason:  r.FailureReason,
			CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		})
	}

	return out
}
