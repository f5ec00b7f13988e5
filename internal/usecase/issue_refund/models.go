package issue_refund

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// Request модель запроса на возврат (оператор)
type Request struct {
	ReservationID string
	Amount        *int64 // nil = весь доступный остаток
	Reason        string
	ReasonDetail  *string
	Actor         domain.Actor
}

// Response запись о возврате
type Response struct {
	ID             string
	ReservationID  string
	Amount         int64
	Reason         string
	Status         string
	StripeRefundID *string
	FailureReason  *string
	ProcessedAt    *time.Time
	ProcessedBy    *string
}
