package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	courseRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/course"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HeliTourService/internal/service/capacity"
)

// maxBookingNumberAttempts попытки при коллизии номера бронирования
const maxBookingNumberAttempts = 3

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	courseRepo      CourseRepository
	capacity        CapacityService
	publisher       EventPublisher
	txManager       TransactionManager
	cfg             Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courseRepo CourseRepository,
	capacity CapacityService,
	publisher EventPublisher,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.BookingNumberPrefix == "" {
		cfg.BookingNumberPrefix = "HT"
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		courseRepo:      courseRepo,
		capacity:        capacity,
		publisher:       publisher,
		txManager:       txManager,
		cfg:             cfg,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Резервирование мест и вставка бронирования выполняются в одной транзакции:
// если вставка не удалась, места в слоте не остаются занятыми
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%s, course=%s, slot=%s, pax=%d",
		req.CustomerID, req.CourseID, req.SlotID, req.Pax)

	// 1. Валидация входных данных
	parsed, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем курс
	course, err := uc.courseRepo.GetByID(ctx, parsed.courseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("CreateReservation: course id=%s not found", parsed.courseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("CreateReservation: failed to get course id=%s: %v", parsed.courseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	if !course.IsActive {
		uc.logger.Warn("CreateReservation: course id=%s is inactive", course.ID)
		return nil, ErrCourseInactive
	}

	// 3. Резервируем места и сохраняем бронирование.
	// Коллизия номера бронирования откатывает транзакцию целиком, попытка повторяется с новым ID
	var (
		result *domain.Reservation
		slot   *domain.Slot
	)

	for attempt := 1; ; attempt++ {
		result, slot, err = uc.reserve(ctx, req, parsed, course)
		if !errors.Is(err, reservationRepo.ErrDuplicateBookingNumber) || attempt == maxBookingNumberAttempts {
			break
		}
		uc.logger.Warn("CreateReservation: booking number collision, attempt %d", attempt)
	}

	if err != nil {
		return nil, uc.translateError(err, parsed.slotID)
	}

	uc.logger.Info("CreateReservation: created reservation id=%s number=%s, slot=%s now %d/%d",
		result.ID, result.BookingNumber, slot.ID, slot.CurrentPax, slot.MaxPax)

	// 4. Публикуем событие для сервисов уведомлений
	if err := uc.publisher.PublishReservationCreated(ctx, events.ReservationCreated{
		ReservationID:   result.ID.String(),
		BookingNumber:   result.BookingNumber,
		CustomerID:      result.CustomerID,
		ReservationDate: result.ReservationDate.Format(domain.DateFormat),
		ReservationTime: result.ReservationTime.String(),
		Pax:             result.Pax,
		TotalPrice:      result.TotalPrice,
		OccurredAt:      time.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("CreateReservation: reservation id=%s created, event not published: %v", result.ID, err)
	}

	return &Response{
		ID:              result.ID,
		BookingNumber:   result.BookingNumber,
		CustomerID:      result.CustomerID,
		CourseID:        result.CourseID,
		SlotID:          result.SlotID,
		ReservationDate: result.ReservationDate,
		ReservationTime: result.ReservationTime,
		Pax:             result.Pax,
		Subtotal:        result.Subtotal,
		Tax:             result.Tax,
		TotalPrice:      result.TotalPrice,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		AvailablePax:    slot.AvailablePax(),
		CreatedAt:       result.CreatedAt,
	}, nil
}

func (uc *UseCase) reserve(
	ctx context.Context,
	req *Request,
	parsed *parsedRequest,
	course *domain.Course,
) (*domain.Reservation, *domain.Slot, error) {
	var (
		created *domain.Reservation
		slot    *domain.Slot
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Условный инкремент current_pax
		var err error
		slot, err = uc.capacity.Reserve(txCtx, parsed.slotID, req.Pax)
		if err != nil {
			return err
		}

		// 3.2. Слот без курса подходит любому курсу
		if slot.CourseID != nil && *slot.CourseID != course.ID {
			return ErrSlotCourseMismatch
		}

		// 3.3. Цена фиксируется на момент бронирования
		price := domain.CalculatePrice(course.Price, req.Pax, uc.cfg.TaxPercent)
		id := uuid.New()

		reservation := &domain.Reservation{
			ID:              id,
			BookingNumber:   domain.NewBookingNumber(uc.cfg.BookingNumberPrefix, slot.Date, id),
			CustomerID:      req.CustomerID,
			CourseID:        course.ID,
			SlotID:          slot.ID,
			ReservationDate: slot.Date,
			ReservationTime: slot.Time,
			Pax:             req.Pax,
			Subtotal:        price.Subtotal,
			Tax:             price.Tax,
			TotalPrice:      price.TotalPrice,
			Status:          domain.ReservationStatusPending,
			PaymentStatus:   domain.PaymentStatusUnpaid,
		}

		if req.PaymentID != nil {
			reservation.Status = domain.ReservationStatusConfirmed
			reservation.PaymentStatus = domain.PaymentStatusPaid
			reservation.PaymentID = req.PaymentID
		}

		// 3.4. Сохраняем бронирование
		created, err = uc.reservationRepo.Create(txCtx, reservation)
		return err
	})

	return created, slot, err
}

// translateError переводит ошибки сервисов в ошибки usecase
func (uc *UseCase) translateError(err error, slotID uuid.UUID) error {
	var capErr *capacity.InsufficientCapacityError

	switch {
	case errors.As(err, &capErr):
		uc.logger.Warn("CreateReservation: slot id=%s has %d spots, requested %d", slotID, capErr.Available, capErr.Requested)
		return fmt.Errorf("%w: %w", ErrInsufficientCapacity, capErr)
	case errors.Is(err, capacity.ErrSlotNotFound):
		uc.logger.Warn("CreateReservation: slot id=%s not found", slotID)
		return ErrSlotNotFound
	case errors.Is(err, capacity.ErrSlotUnavailable):
		uc.logger.Warn("CreateReservation: slot id=%s is not open", slotID)
		return ErrSlotUnavailable
	case errors.Is(err, ErrSlotCourseMismatch):
		uc.logger.Warn("CreateReservation: slot id=%s belongs to another course", slotID)
		return err
	default:
		uc.logger.Error("CreateReservation: failed to create reservation for slot id=%s: %v", slotID, err)
		return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}
}
