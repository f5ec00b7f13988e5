package domain

import (
	"time"

	"github.com/google/uuid"
)

// CancellationPolicyTier строка таблицы политики отмены:
// при отмене за DaysBefore и менее дней до вылета удерживается FeePercentage процентов
type CancellationPolicyTier struct {
	ID            uuid.UUID
	DaysBefore    int
	FeePercentage int // 0-100
	DisplayOrder  int
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CancellationQuote расчет комиссии и возврата, показываемый клиенту перед отменой
type CancellationQuote struct {
	TotalPrice      int64
	FeePercentage   int
	CancellationFee int64
	RefundAmount    int64
	DaysUntil       int
	CanCancel       bool
}
