package get_cancellation_policy

import (
	"context"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

type CancellationService interface {
	ListPolicy(ctx context.Context) ([]domain.CancellationPolicyTier, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
