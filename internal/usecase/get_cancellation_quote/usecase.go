package get_cancellation_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
)

// UseCase use case для расчета комиссии за отмену без изменения данных
type UseCase struct {
	reservationRepo ReservationRepository
	cancellation    CancellationService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, cancellation CancellationService, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		cancellation:    cancellation,
		logger:          logger,
	}
}

// Execute выполняет use case расчета комиссии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	id, err := uuid.Parse(req.ReservationID)
	if err != nil {
		uc.logger.Warn("GetCancellationQuote: invalid reservation id %q", req.ReservationID)
		return nil, fmt.Errorf("%w: reservationId %q is not a valid UUID", ErrInvalidInput, req.ReservationID)
	}

	// 2. Получаем бронирование
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("GetCancellationQuote: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("GetCancellationQuote: failed to get reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа
	if !req.Actor.CanAccess(res) {
		uc.logger.Warn("GetCancellationQuote: user=%s has no access to reservation id=%s", req.Actor.ID, id)
		return nil, ErrAccessDenied
	}

	// 4. Считаем комиссию
	quote, err := uc.cancellation.Quote(ctx, res)
	if err != nil {
		uc.logger.Error("GetCancellationQuote: failed to compute quote for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	return &Response{
		ReservationID:   res.ID.String(),
		BookingNumber:   res.BookingNumber,
		ReservationDate: res.ReservationDate,
		Status:          string(res.Status),
		TotalPrice:      quote.TotalPrice,
		FeePercentage:   quote.FeePercentage,
		CancellationFee: quote.CancellationFee,
		RefundAmount:    quote.RefundAmount,
		DaysUntil:       quote.DaysUntil,
		CanCancel:       quote.CanCancel && res.CanBeCancelled(),
	}, nil
}
