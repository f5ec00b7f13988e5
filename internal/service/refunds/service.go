package refunds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	refundRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/refund"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/opsnotifier"
	"github.com/m04kA/SMC-HeliTourService/pkg/ptr"
)

// Service оформление возвратов через платежный шлюз
type Service struct {
	reservationRepo ReservationRepository
	refundRepo      RefundRepository
	gateway         PaymentGateway
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса возвратов
func NewService(
	reservationRepo ReservationRepository,
	refundRepo RefundRepository,
	gateway PaymentGateway,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		refundRepo:      refundRepo,
		gateway:         gateway,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		now:             time.Now,
		logger:          logger,
	}
}

// Issue оформляет возврат.
//
// Запись pending создается в транзакции с блокировкой бронирования, поэтому параллельные
// возвраты не превысят остаток. Обращение к шлюзу идет уже после фиксации транзакции.
// При отказе шлюза возвращается запись в статусе failed вместе с ErrRefundFailed
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*domain.Refund, error) {
	if err := validateIssueRequest(req); err != nil {
		s.logger.Warn("Issue: validation failed for reservation=%s: %v", req.ReservationID, err)
		return nil, err
	}

	var (
		res        *domain.Reservation
		refund     *domain.Refund
		refundable int64
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Issue - get reservation: %v", ErrInternal, err)
		}

		if res.PaymentID == nil || !res.IsPaid() {
			return fmt.Errorf("%w: payment status is %s", ErrNotRefundable, res.PaymentStatus)
		}

		refunded, err := s.refundRepo.SumRefunded(txCtx, res.ID)
		if err != nil {
			return fmt.Errorf("%w: Issue - sum refunds: %v", ErrInternal, err)
		}

		refundable = RefundableAmount(res, refunded)
		if refundable <= 0 {
			return fmt.Errorf("%w: nothing left to refund", ErrNotRefundable)
		}

		amount := refundable
		if req.Amount != nil {
			amount = *req.Amount
		}
		if amount > refundable {
			return fmt.Errorf("%w: requested %d, refundable %d", ErrAmountExceedsRefundable, amount, refundable)
		}

		refund, err = s.refundRepo.Create(txCtx, &domain.Refund{
			ID:            uuid.New(),
			ReservationID: res.ID,
			PaymentID:     *res.PaymentID,
			Amount:        amount,
			Reason:        req.Reason,
			ReasonDetail:  req.ReasonDetail,
			Status:        domain.RefundStatusPending,
			ProcessedBy:   ptr.Ptr(req.ProcessedBy),
		})
		if err != nil {
			return fmt.Errorf("%w: Issue - create refund: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Issue: reservation=%s: %v", req.ReservationID, err)
		} else {
			s.logger.Warn("Issue: reservation=%s: %v", req.ReservationID, err)
		}
		return nil, err
	}

	return s.process(ctx, res, refund, refundable)
}

// stuckPendingReason строка в уведомлении, когда итог возврата не удалось сохранить.
// Такая запись остается pending и учитывается в SumRefunded до ручного разбора
const stuckPendingReason = "refund left pending, resolve manually"

// process отправляет возврат в шлюз и фиксирует результат.
// Учет ведется с контекстом без отмены: деньги могли уйти, даже если клиент отключился
func (s *Service) process(ctx context.Context, res *domain.Reservation, refund *domain.Refund, refundable int64) (*domain.Refund, error) {
	gatewayRefund, gatewayErr := s.gateway.CreateRefund(ctx, refund.PaymentID, refund.Amount, refund.ID.String())

	bookkeepingCtx := context.WithoutCancel(ctx)
	processedAt := s.now().UTC()
	refund.ProcessedAt = &processedAt

	if gatewayErr != nil {
		refund.Status = domain.RefundStatusFailed
		refund.FailureReason = ptr.Ptr(gatewayErr.Error())

		s.metrics.IncRefund(string(domain.RefundStatusFailed))
		s.logger.Error("Issue: gateway refused refund=%s for reservation=%s amount=%d: %v",
			refund.ID, res.ID, refund.Amount, gatewayErr)

		alertReason := gatewayErr.Error()
		if err := s.refundRepo.SaveResult(bookkeepingCtx, refund.ID, refundRepo.ResultParams{
			Status:        domain.RefundStatusFailed,
			FailureReason: refund.FailureReason,
			ProcessedAt:   processedAt,
			ProcessedBy:   ptr.Value(refund.ProcessedBy),
		}); err != nil {
			s.logger.Error("Issue: failed to save failed status for refund=%s: %v", refund.ID, err)
			alertReason = fmt.Sprintf("%s: %s; save error: %v", stuckPendingReason, gatewayErr, err)
		}

		_ = s.notifier.NotifyRefundFailed(bookkeepingCtx, opsnotifier.RefundAlert{
			BookingNumber: res.BookingNumber,
			RefundID:      refund.ID.String(),
			Amount:        refund.Amount,
			Reason:        alertReason,
		})
		s.publish(bookkeepingCtx, res, refund)

		return refund, fmt.Errorf("%w: %v", ErrRefundFailed, gatewayErr)
	}

	refund.Status = domain.RefundStatusSucceeded
	refund.StripeRefundID = ptr.Ptr(gatewayRefund.ID)
	s.metrics.IncRefund(string(domain.RefundStatusSucceeded))

	if err := s.refundRepo.SaveResult(bookkeepingCtx, refund.ID, refundRepo.ResultParams{
		Status:         domain.RefundStatusSucceeded,
		StripeRefundID: refund.StripeRefundID,
		ProcessedAt:    processedAt,
		ProcessedBy:    ptr.Value(refund.ProcessedBy),
	}); err != nil {
		s.logger.Error("Issue: refund=%s succeeded at gateway as %s but was not saved: %v", refund.ID, gatewayRefund.ID, err)
		_ = s.notifier.NotifyRefundFailed(bookkeepingCtx, opsnotifier.RefundAlert{
			BookingNumber: res.BookingNumber,
			RefundID:      refund.ID.String(),
			Amount:        refund.Amount,
			Reason:        fmt.Sprintf("%s: gateway refund %s succeeded; save error: %v", stuckPendingReason, gatewayRefund.ID, err),
		})
		return refund, fmt.Errorf("%w: Issue - save refund result: %v", ErrInternal, err)
	}

	paymentStatus := domain.PaymentStatusPartialRefund
	if refund.Amount == refundable {
		paymentStatus = domain.PaymentStatusRefunded
	}

	if err := s.reservationRepo.UpdatePaymentStatus(bookkeepingCtx, res.ID, paymentStatus); err != nil {
		s.logger.Error("Issue: failed to set payment status=%s for reservation=%s: %v", paymentStatus, res.ID, err)
		return refund, fmt.Errorf("%w: Issue - update payment status: %v", ErrInternal, err)
	}

	s.publish(bookkeepingCtx, res, refund)
	s.logger.Info("Issue: refund=%s (%s) of %d for reservation=%s, payment status=%s",
		refund.ID, gatewayRefund.ID, refund.Amount, res.ID, paymentStatus)

	return refund, nil
}

func (s *Service) publish(ctx context.Context, res *domain.Reservation, refund *domain.Refund) {
	_ = s.publisher.PublishRefundProcessed(ctx, events.RefundProcessed{
		RefundID:      refund.ID.String(),
		ReservationID: res.ID.String(),
		BookingNumber: res.BookingNumber,
		Amount:        refund.Amount,
		Status:        string(refund.Status),
		OccurredAt:    s.now().UTC(),
	})
}

// RefundableAmount остаток к возврату: цена минус уже возвращенное,
// для отмененного бронирования также минус удержанная комиссия
func RefundableAmount(res *domain.Reservation, alreadyRefunded int64) int64 {
	refundable := res.TotalPrice - alreadyRefunded
	if res.IsCancelled() && res.CancellationFee != nil {
		refundable -= *res.CancellationFee
	}
	if refundable < 0 {
		return 0
	}
	return refundable
}

func validateIssueRequest(req IssueRequest) error {
	if req.ReservationID == uuid.Nil {
		return fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}
	if !req.Reason.IsValid() {
		return fmt.Errorf("%w: unknown refund reason %q", ErrInvalidInput, req.Reason)
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if req.ProcessedBy == "" {
		return fmt.Errorf("%w: processedBy is required", ErrInvalidInput)
	}
	return nil
}
