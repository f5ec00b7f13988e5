package refunds

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// IssueRequest запрос на возврат
type IssueRequest struct {
	ReservationID uuid.UUID
	Amount        *int64 // nil = весь доступный остаток
	Reason        domain.RefundReason
	ReasonDetail  *string
	ProcessedBy   string
}
