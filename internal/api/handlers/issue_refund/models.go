package issue_refund

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	issueRefund "github.com/m04kA/SMC-HeliTourService/internal/usecase/issue_refund"
)

// IssueRefundRequest HTTP request model
type IssueRefundRequest struct {
	Amount       *int64  `json:"amount,omitempty"` // не указан = весь доступный остаток
	Reason       string  `json:"reason"`
	ReasonDetail *string `json:"reasonDetail,omitempty"`
}

// RefundResponse HTTP response model
type RefundResponse struct {
	ID             string  `json:"id"`
	ReservationID  string  `json:"reservationId"`
	Amount         int64   `json:"amount"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	StripeRefundID *string `json:"stripeRefundId"`
	FailureReason  *string `json:"failureReason"`
	ProcessedAt    *string `json:"processedAt"`
	ProcessedBy    *string `json:"processedBy"`
}

// RefundFailedResponse 502 с записью возврата в статусе failed
type RefundFailedResponse struct {
	Error  string          `json:"error"`
	Refund *RefundResponse `json:"refund,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *IssueRefundRequest) ToUseCaseRequest(reservationID string, actor domain.Actor) *issueRefund.Request {
	return &issueRefund.Request{
		ReservationID: reservationID,
		Amount:        r.Amount,
		Reason:        r.Reason,
		ReasonDetail:  r.ReasonDetail,
		Actor:         actor,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *issueRefund.Response) *RefundResponse {
	if resp == nil {
		return nil
	}

	out := &RefundResponse{
		ID:             resp.ID,
		ReservationID:  resp.ReservationID,
		Amount:         resp.Amount,
		Reason:         resp.Reason,
		Status:         resp.Status,
		StripeRefundID: resp.StripeRefundID,
		FailureReason:  resp.FailureReason,
		ProcessedBy:    resp.ProcessedBy,
	}
	if resp.ProcessedAt != nil {
		processedAt := resp.ProcessedAt.Format(time.RFC3339)
		out.ProcessedAt = &processedAt
	}
	return out
}
