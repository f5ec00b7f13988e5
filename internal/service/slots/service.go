package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	slotRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/slot"
)

// Service сервис чтения слотов и смены их статуса оператором
type Service struct {
	slotRepo         SlotRepository
	maxListRangeDays int
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов
// maxListRangeDays ограничивает диапазон выборки слотов
func NewService(slotRepo SlotRepository, maxListRangeDays int, logger Logger) *Service {
	return &Service{
		slotRepo:         slotRepo,
		maxListRangeDays: maxListRangeDays,
		logger:           logger,
	}
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return slot, nil
}

// List получает слоты за период с текущей доступностью
func (s *Service) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	if filter.EndDate.Before(filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if s.maxListRangeDays > 0 && filter.EndDate.Sub(filter.StartDate) > time.Duration(s.maxListRangeDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: date range must not exceed %d days", ErrInvalidInput, s.maxListRangeDays)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d slots for period=%s to %s",
		len(slots), filter.StartDate.Format(domain.DateFormat), filter.EndDate.Format(domain.DateFormat))
	return slots, nil
}

// Close останавливает продажи: open -> closed
func (s *Service) Close(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return s.changeStatus(ctx, id, domain.SlotStatusClosed, nil)
}

// Reopen возобновляет продажи: closed -> open
func (s *Service) Reopen(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return s.changeStatus(ctx, id, domain.SlotStatusOpen, nil)
}

// Suspend отменяет полет оператором: open -> suspended, причина обязательна
func (s *Service) Suspend(ctx context.Context, id uuid.UUID, reason string) (*domain.Slot, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: suspend reason is required", ErrInvalidInput)
	}
	if len([]rune(reason)) > domain.MaxSuspendReasonLength {
		return nil, fmt.Errorf("%w: suspend reason must not exceed %d characters", ErrInvalidInput, domain.MaxSuspendReasonLength)
	}

	return s.changeStatus(ctx, id, domain.SlotStatusSuspended, &reason)
}

// changeStatus проверяет переход и применяет его условным UPDATE по текущему статусу,
// чтобы параллельная смена статуса не была перезаписана
func (s *Service) changeStatus(ctx context.Context, id uuid.UUID, target domain.SlotStatus, reason *string) (*domain.Slot, error) {
	slot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !slot.CanTransitionTo(target) {
		s.logger.Warn("changeStatus: slot=%s transition %s -> %s is not allowed", id, slot.Status, target)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, slot.Status, target)
	}

	updated, err := s.slotRepo.UpdateStatus(ctx, id, slot.Status, target, reason)
	if err != nil {
		if errors.Is(err, slotRepo.ErrConditionNotMet) {
			s.logger.Warn("changeStatus: slot=%s status changed concurrently", id)
			return nil, fmt.Errorf("%w: slot status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("changeStatus: repository error for slot=%s: %v", id, err)
		return nil, fmt.Errorf("%w: changeStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("changeStatus: slot=%s %s -> %s", id, slot.Status, target)
	return updated, nil
}
