package get_cancellation_quote

import (
	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	getQuote "github.com/m04kA/SMC-HeliTourService/internal/usecase/get_cancellation_quote"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ReservationID   string `json:"reservationId"`
	BookingNumber   string `json:"bookingNumber"`
	ReservationDate string `json:"reservationDate"`
	Status          string `json:"status"`
	TotalPrice      int64  `json:"totalPrice"`
	FeePercentage   int    `json:"feePercentage"`
	CancellationFee int64  `json:"cancellationFee"`
	RefundAmount    int64  `json:"refundAmount"`
	DaysUntil       int    `json:"daysUntil"`
	CanCancel       bool   `json:"canCancel"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	return &QuoteResponse{
		ReservationID:   resp.ReservationID,
		BookingNumber:   resp.BookingNumber,
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		Status:          resp.Status,
		TotalPrice:      resp.TotalPrice,
		FeePercentage:   resp.FeePercentage,
		CancellationFee: resp.CancellationFee,
		RefundAmount:    resp.RefundAmount,
		DaysUntil:       resp.DaysUntil,
		CanCancel:       resp.CanCancel,
	}
}
