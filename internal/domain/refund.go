package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefundReason причина возврата
type RefundReason string

const (
	RefundReasonCustomerRequest RefundReason = "customer_request"
	RefundReasonWeather         RefundReason = "weather"
	RefundReasonMechanical      RefundReason = "mechanical"
	RefundReasonOperatorCancel  RefundReason = "operator_cancel"
	RefundReasonOther           RefundReason = "other"
)

// IsValid returns true if the reason is known
func (r RefundReason) IsValid() bool {
	switch r {
	case RefundReasonCustomerRequest, RefundReasonWeather, RefundReasonMechanical,
		RefundReasonOperatorCancel, RefundReasonOther:
		return true
	}
	return false
}

// RefundStatus статус возврата
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusSucceeded RefundStatus = "succeeded"
	RefundStatusFailed    RefundStatus = "failed"
)

// Refund запись о возврате денег через платежный шлюз
type Refund struct {
	ID             uuid.UUID
	ReservationID  uuid.UUID
	PaymentID      string
	Amount         int64
	Reason         RefundReason
	ReasonDetail   *string
	StripeRefundID *string
	Status         RefundStatus
	FailureReason  *string
	ProcessedAt    *time.Time
	ProcessedBy    *string

	CreatedAt time.Time
}

// IsSucceeded returns true if the gateway accepted the refund
func (r *Refund) IsSucceeded() bool {
	return r.Status == RefundStatusSucceeded
}
