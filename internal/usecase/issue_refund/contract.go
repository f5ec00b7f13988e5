package issue_refund

import (
	"context"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
)

// RefundService оформление возвратов
type RefundService interface {
	Issue(ctx context.Context, req refunds.IssueRequest) (*domain.Refund, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
