package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
)

// Details бронирование вместе с историей возвратов
type Details struct {
	Reservation *domain.Reservation
	Refunds     []*domain.Refund
}

// Service чтение бронирований
type Service struct {
	reservationRepo ReservationRepository
	refundRepo      RefundRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, refundRepo RefundRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		refundRepo:      refundRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование с возвратами. Клиент видит только свои бронирования
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*Details, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(res) {
		s.logger.Warn("GetByID: user=%s has no access to reservation=%s", actor.ID, id)
		return nil, ErrAccessDenied
	}

	refunds, err := s.refundRepo.ListByReservation(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list refunds for reservation=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - refund repository error: %v", ErrInternal, err)
	}

	return &Details{Reservation: res, Refunds: refunds}, nil
}
