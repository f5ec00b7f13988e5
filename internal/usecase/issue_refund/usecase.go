package issue_refund

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
)

// UseCase use case для ручного возврата или повтора неудавшегося возврата
type UseCase struct {
	refunds RefundService
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(refunds RefundService, logger Logger) *UseCase {
	return &UseCase{
		refunds: refunds,
		logger:  logger,
	}
}

// Execute выполняет возврат. При отказе шлюза вместе с ErrRefundFailed
// возвращается запись возврата в статусе failed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("IssueRefund: reservation=%s, reason=%s, by=%s", req.ReservationID, req.Reason, req.Actor.ID)

	// 1. Валидация входных данных
	id, err := uuid.Parse(req.ReservationID)
	if err != nil {
		uc.logger.Warn("IssueRefund: invalid reservation id %q", req.ReservationID)
		return nil, fmt.Errorf("%w: reservationId %q is not a valid UUID", ErrInvalidInput, req.ReservationID)
	}

	reason := domain.RefundReason(strings.TrimSpace(req.Reason))
	if !reason.IsValid() {
		uc.logger.Warn("IssueRefund: unknown reason %q", req.Reason)
		return nil, fmt.Errorf("%w: unknown refund reason %q", ErrInvalidInput, req.Reason)
	}

	// 2. Оформляем возврат
	refund, err := uc.refunds.Issue(ctx, refunds.IssueRequest{
		ReservationID: id,
		Amount:        req.Amount,
		Reason:        reason,
		ReasonDetail:  req.ReasonDetail,
		ProcessedBy:   req.Actor.ID,
	})

	var resp *Response
	if refund != nil {
		resp = toResponse(refund)
	}

	if err != nil {
		switch {
		case errors.Is(err, refunds.ErrInvalidInput), errors.Is(err, refunds.ErrAmountExceedsRefundable):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, refunds.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, refunds.ErrNotRefundable):
			return nil, fmt.Errorf("%w: %v", ErrNotRefundable, err)
		case errors.Is(err, refunds.ErrRefundFailed):
			uc.logger.Warn("IssueRefund: gateway refused refund for reservation=%s: %v", id, err)
			return resp, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		default:
			return resp, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("IssueRefund: refund id=%s amount=%d for reservation=%s", refund.ID, refund.Amount, id)

	return resp, nil
}

func toResponse(refund *domain.Refund) *Response {
	return &Response{
		ID:             refund.ID.String(),
		ReservationID:  refund.ReservationID.String(),
		Amount:         refund.Amount,
		Reason:         string(refund.Reason),
		Status:         string(refund.Status),
		StripeRefundID: refund.StripeRefundID,
		FailureReason:  refund.FailureReason,
		ProcessedAt:    refund.ProcessedAt,
		ProcessedBy:    refund.ProcessedBy,
	}
}
