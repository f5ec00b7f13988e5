package issue_refund

import (
	"context"

	issueRefund "github.com/m04kA/SMC-HeliTourService/internal/usecase/issue_refund"
)

type IssueRefundUseCase interface {
	Execute(ctx context.Context, req *issueRefund.Request) (*issueRefund.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
