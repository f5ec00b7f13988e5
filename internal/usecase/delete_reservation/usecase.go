package delete_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
)

// UseCase use case для физического удаления бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	capacity        CapacityService
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	capacity CapacityService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		capacity:        capacity,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute удаляет бронирование и освобождает его места в одной транзакции.
// Отмененное бронирование мест уже не держит
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("DeleteReservation: reservation=%s, by=%s", req.ReservationID, req.ActorID)

	// 1. Валидация входных данных
	id, err := uuid.Parse(req.ReservationID)
	if err != nil {
		uc.logger.Warn("DeleteReservation: invalid reservation id %q", req.ReservationID)
		return fmt.Errorf("%w: reservationId %q is not a valid UUID", ErrInvalidInput, req.ReservationID)
	}

	// 2. Блокируем бронирование, освобождаем места и удаляем
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if !res.CanBeDeleted() {
			return fmt.Errorf("%w: status %s", ErrCannotDelete, res.Status)
		}

		if res.HoldsCapacity() {
			if _, err := uc.capacity.Release(txCtx, res.SlotID, res.Pax); err != nil {
				return fmt.Errorf("%w: failed to release capacity: %v", ErrInternal, err)
			}
		}

		if err := uc.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrCannotDelete):
			uc.logger.Warn("DeleteReservation: reservation id=%s: %v", id, err)
			return err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("DeleteReservation: reservation id=%s: %v", id, err)
			return err
		default:
			uc.logger.Error("DeleteReservation: transaction failed for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("DeleteReservation: reservation id=%s deleted", id)

	return nil
}
