package cancellation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
)

// Service расчет комиссии за отмену и применение отмены
type Service struct {
	policyRepo      PolicyRepository
	cache           PolicyCache
	reservationRepo ReservationRepository
	capacity        CapacityService
	txManager       TransactionManager
	loc             *time.Location
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса отмены. cache может быть nil
func NewService(
	policyRepo PolicyRepository,
	cache PolicyCache,
	reservationRepo ReservationRepository,
	capacity CapacityService,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:      policyRepo,
		cache:           cache,
		reservationRepo: reservationRepo,
		capacity:        capacity,
		txManager:       txManager,
		loc:             loc,
		now:             time.Now,
		logger:          logger,
	}
}

// ListPolicy активные уровни политики в порядке отображения
func (s *Service) ListPolicy(ctx context.Context) ([]domain.CancellationPolicyTier, error) {
	if s.cache != nil {
		if tiers, ok := s.cache.Get(ctx); ok {
			return tiers, nil
		}
	}

	tiers, err := s.policyRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListPolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPolicy - repository error: %v", ErrInternal, err)
	}

	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].DisplayOrder < tiers[j].DisplayOrder
	})

	if s.cache != nil {
		s.cache.Set(ctx, tiers)
	}

	return tiers, nil
}

// Quote рассчитывает комиссию за отмену бронирования на текущий момент.
// Отсутствие политики дает 0% и не является ошибкой
func (s *Service) Quote(ctx context.Context, res *domain.Reservation) (*domain.CancellationQuote, error) {
	tiers, err := s.ListPolicy(ctx)
	if err != nil {
		return nil, err
	}

	if len(tiers) == 0 {
		s.logger.Warn("Quote: no active cancellation policy tiers, fee defaults to 0 for reservation=%s", res.ID)
	}

	quote := ComputeQuote(res.TotalPrice, tiers, res.ReservationDate, s.now(), s.loc)

	s.logger.Info("Quote: reservation=%s, days_until=%d, fee=%d%% (%d), refund=%d",
		res.ID, quote.DaysUntil, quote.FeePercentage, quote.CancellationFee, quote.RefundAmount)

	return &quote, nil
}

// Apply отменяет бронирование в одной транзакции: статус cancelled с комиссией и освобождение мест.
// Ошибка любого шага откатывает оба. Возврат денег выполняется отдельно
func (s *Service) Apply(
	ctx context.Context,
	res *domain.Reservation,
	quote domain.CancellationQuote,
	cancelledBy string,
	reason *string,
) (*domain.Reservation, error) {
	if !res.CanBeCancelled() {
		s.logger.Warn("Apply: reservation=%s has status=%s", res.ID, res.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, res.Status)
	}
	if !quote.CanCancel {
		s.logger.Warn("Apply: reservation=%s flight date has passed (days_until=%d)", res.ID, quote.DaysUntil)
		return nil, fmt.Errorf("%w: flight date has passed", ErrCannotCancel)
	}

	var cancelled *domain.Reservation
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		cancelled, err = s.reservationRepo.Cancel(ctx, res.ID, reservationRepo.CancelParams{
			CancelledAt: s.now().UTC(),
			CancelledBy: cancelledBy,
			Reason:      reason,
			Fee:         quote.CancellationFee,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrConditionNotMet) {
				return fmt.Errorf("%w: reservation was already cancelled or completed", ErrCannotCancel)
			}
			return fmt.Errorf("%w: Apply - cancel reservation: %v", ErrInternal, err)
		}

		if _, err := s.capacity.Release(ctx, res.SlotID, res.Pax); err != nil {
			return fmt.Errorf("%w: Apply - release capacity: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCannotCancel) {
			s.logger.Warn("Apply: reservation=%s: %v", res.ID, err)
			return nil, err
		}
		s.logger.Error("Apply: failed to cancel reservation=%s: %v", res.ID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Apply - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Apply: reservation=%s cancelled by=%s, fee=%d, released pax=%d on slot=%s",
		res.ID, cancelledBy, quote.CancellationFee, res.Pax, res.SlotID)

	return cancelled, nil
}
