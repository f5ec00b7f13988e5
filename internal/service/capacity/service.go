// Package capacity держит инвариант 0 <= current_pax <= max_pax.
// Состояние хранится только в БД: каждая операция это один условный UPDATE
package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	slotRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/slot"
)

const (
	operationReserve = "reserve"
	operationRelease = "release"

	resultOK           = "ok"
	resultNotFound     = "not_found"
	resultUnavailable  = "unavailable"
	resultInsufficient = "insufficient"
	resultClamped      = "clamped"
	resultError        = "error"
)

// Service менеджер вместимости слотов
type Service struct {
	slotRepo SlotRepository
	metrics  Metrics
	logger   Logger
}

// NewService создает новый экземпляр менеджера вместимости
func NewService(slotRepo SlotRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Reserve занимает pax мест в слоте.
// При конфликте слот перечитывается только для классификации ошибки
func (s *Service) Reserve(ctx context.Context, slotID uuid.UUID, pax int) (*domain.Slot, error) {
	if pax <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPax, pax)
	}

	slot, err := s.slotRepo.IncrementPax(ctx, slotID, pax)
	if err == nil {
		s.metrics.IncCapacityOperation(operationReserve, resultOK)
		s.logger.Info("Reserve: slot=%s, pax=%d, current_pax=%d/%d", slotID, pax, slot.CurrentPax, slot.MaxPax)
		return slot, nil
	}

	if !errors.Is(err, slotRepo.ErrConditionNotMet) {
		s.metrics.IncCapacityOperation(operationReserve, resultError)
		s.logger.Error("Reserve: failed to increment pax for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Reserve - increment pax: %v", ErrInternal, err)
	}

	current, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.metrics.IncCapacityOperation(operationReserve, resultNotFound)
			s.logger.Warn("Reserve: slot=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.metrics.IncCapacityOperation(operationReserve, resultError)
		s.logger.Error("Reserve: failed to read slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Reserve - get slot: %v", ErrInternal, err)
	}

	if !current.IsOpen() {
		s.metrics.IncCapacityOperation(operationReserve, resultUnavailable)
		s.logger.Warn("Reserve: slot=%s is %s", slotID, current.Status)
		return nil, fmt.Errorf("%w: status %s", ErrSlotUnavailable, current.Status)
	}

	s.metrics.IncCapacityOperation(operationReserve, resultInsufficient)
	s.logger.Warn("Reserve: slot=%s requested=%d available=%d", slotID, pax, current.AvailablePax())
	return nil, &InsufficientCapacityError{Requested: pax, Available: current.AvailablePax()}
}

// Release освобождает pax мест. Если освобождение ушло бы ниже нуля,
// счетчик обнуляется и пишется предупреждение
func (s *Service) Release(ctx context.Context, slotID uuid.UUID, pax int) (*domain.Slot, error) {
	if pax <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPax, pax)
	}

	slot, err := s.slotRepo.DecrementPax(ctx, slotID, pax)
	if err == nil {
		s.metrics.IncCapacityOperation(operationRelease, resultOK)
		s.logger.Info("Release: slot=%s, pax=%d, current_pax=%d/%d", slotID, pax, slot.CurrentPax, slot.MaxPax)
		return slot, nil
	}

	if !errors.Is(err, slotRepo.ErrConditionNotMet) {
		s.metrics.IncCapacityOperation(operationRelease, resultError)
		s.logger.Error("Release: failed to decrement pax for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Release - decrement pax: %v", ErrInternal, err)
	}

	// Условие не выполнено: либо слота нет, либо current_pax < pax
	slot, err = s.slotRepo.ResetPax(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.metrics.IncCapacityOperation(operationRelease, resultNotFound)
			s.logger.Warn("Release: slot=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.metrics.IncCapacityOperation(operationRelease, resultError)
		s.logger.Error("Release: failed to reset pax for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Release - reset pax: %v", ErrInternal, err)
	}

	s.metrics.IncCapacityOperation(operationRelease, resultClamped)
	s.logger.Warn("Release: underflow on slot=%s releasing pax=%d, current_pax clamped to 0", slotID, pax)
	return slot, nil
}
