package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HeliTourService/internal/service/cancellation"
	"github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
)

// UseCase use case для отмены бронирования клиентом или оператором
type UseCase struct {
	reservationRepo ReservationRepository
	cancellation    CancellationService
	refunds         RefundService
	publisher       EventPublisher
	metrics         Metrics
	cfg             Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	cancellation CancellationService,
	refunds RefundService,
	publisher EventPublisher,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		cancellation:    cancellation,
		refunds:         refunds,
		publisher:       publisher,
		metrics:         metrics,
		cfg:             cfg,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет отмену: расчет комиссии, отмена с освобождением мест в одной транзакции,
// затем возврат денег отдельным шагом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%s, user=%s, role=%s", req.ReservationID, req.Actor.ID, req.Actor.Role)

	// 1. Валидация входных данных
	id, reason, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа
	if !req.Actor.CanAccess(res) {
		uc.logger.Warn("CancelReservation: user=%s has no access to reservation id=%s", req.Actor.ID, id)
		return nil, ErrAccessDenied
	}

	// 4. Считаем комиссию
	quote, err := uc.cancellation.Quote(ctx, res)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to compute quote for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	// 5. Отменяем и освобождаем места
	cancelled, err := uc.cancellation.Apply(ctx, res, *quote, req.Actor.ID, reason)
	if err != nil {
		if errors.Is(err, cancellation.ErrCannotCancel) {
			uc.logger.Warn("CancelReservation: reservation id=%s cannot be cancelled: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrCannotCancel, err)
		}
		uc.logger.Error("CancelReservation: failed to cancel reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
	}

	uc.metrics.IncCancellation(string(req.Actor.Role))

	resp := &Response{
		ReservationID:   cancelled.ID.String(),
		BookingNumber:   cancelled.BookingNumber,
		Status:          string(cancelled.Status),
		CancelledAt:     cancelled.CancelledAt,
		CancelledBy:     cancelled.CancelledBy,
		FeePercentage:   quote.FeePercentage,
		CancellationFee: quote.CancellationFee,
		RefundAmount:    quote.RefundAmount,
	}

	// 6. Возврат денег. Ошибка шлюза не отменяет отмену
	if uc.cfg.RefundOnCancel && cancelled.IsPaid() && quote.RefundAmount > 0 {
		resp.Refund = uc.refund(ctx, cancelled, req.Actor)
	}

	// 7. Публикуем событие для сервисов уведомлений
	if err := uc.publisher.PublishReservationCancelled(ctx, events.ReservationCancelled{
		ReservationID:   cancelled.ID.String(),
		BookingNumber:   cancelled.BookingNumber,
		CustomerID:      cancelled.CustomerID,
		CancelledBy:     req.Actor.ID,
		TotalPrice:      quote.TotalPrice,
		FeePercentage:   quote.FeePercentage,
		CancellationFee: quote.CancellationFee,
		RefundAmount:    quote.RefundAmount,
		OccurredAt:      uc.timeProvider.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("CancelReservation: reservation id=%s cancelled, event not published: %v", id, err)
	}

	uc.logger.Info("CancelReservation: reservation id=%s cancelled, fee=%d, refund=%d",
		id, quote.CancellationFee, quote.RefundAmount)

	return resp, nil
}

func (uc *UseCase) refund(ctx context.Context, res *domain.Reservation, actor domain.Actor) *RefundResult {
	reason := domain.RefundReasonCustomerRequest
	if actor.IsAdmin() {
		reason = domain.RefundReasonOperatorCancel
	}

	refund, err := uc.refunds.Issue(ctx, refunds.IssueRequest{
		ReservationID: res.ID,
		Reason:        reason,
		ProcessedBy:   actor.ID,
	})

	if err == nil {
		return &RefundResult{
			ID:     refund.ID.String(),
			Amount: refund.Amount,
			Status: string(refund.Status),
		}
	}

	uc.logger.Error("CancelReservation: refund for reservation id=%s failed: %v", res.ID, err)

	result := &RefundResult{
		Status:    string(domain.RefundStatusFailed),
		Error:     err.Error(),
		Retryable: errors.Is(err, refunds.ErrRefundFailed),
	}
	if refund != nil {
		result.ID = refund.ID.String()
		result.Amount = refund.Amount
		result.Status = string(refund.Status)
	}
	return result
}
