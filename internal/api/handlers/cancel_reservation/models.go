package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RefundResponse итог возврата после отмены
type RefundResponse struct {
	ID        string `json:"id,omitempty"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Retryable bool   `json:"retryable"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID   string          `json:"reservationId"`
	BookingNumber   string          `json:"bookingNumber"`
	Status          string          `json:"status"`
	CancelledAt     *string         `json:"cancelledAt"`
	CancelledBy     *string         `json:"cancelledBy"`
	FeePercentage   int             `json:"feePercentage"`
	CancellationFee int64           `json:"cancellationFee"`
	RefundAmount    int64           `json:"refundAmount"`
	Refund          *RefundResponse `json:"refund,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID string, actor domain.Actor) *cancelReservation.Request {
	return &cancelReservation.Request{
		ReservationID: reservationID,
		Actor:         actor,
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	out := &CancelReservationResponse{
		ReservationID:   resp.ReservationID,
		BookingNumber:   resp.BookingNumber,
		Status:          resp.Status,
		CancelledBy:     resp.CancelledBy,
		FeePercentage:   resp.FeePercentage,
		CancellationFee: resp.CancellationFee,
		RefundAmount:    resp.RefundAmount,
	}

	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}

	if resp.Refund != nil {
		out.Refund = &RefundResponse{
			ID:        resp.Refund.ID,
			Amount:    resp.Refund.Amount,
			Status:    resp.Refund.Status,
			Error:     resp.Refund.Error,
			Retryable: resp.Refund.Retryable,
		}
	}

	return out
}
