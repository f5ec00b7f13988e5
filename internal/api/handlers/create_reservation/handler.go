package create_reservation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	"github.com/m04kA/SMC-HeliTourService/internal/service/capacity"
	createReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgCourseNotFound       = "курс не найден"
	msgCourseInactive       = "курс недоступен для бронирования"
	msgSlotNotFound         = "слот не найден"
	msgSlotUnavailable      = "слот закрыт для бронирования"
	msgSlotCourseMismatch   = "слот относится к другому курсу"
	msgInsufficientCapacity = "недостаточно свободных мест: осталось %d"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(customerID))
	if err != nil {
		var capErr *capacity.InsufficientCapacityError

		switch {
		case errors.As(err, &capErr):
			h.logger.Warn("POST /reservations - Insufficient capacity: slot_id=%s, requested=%d, available=%d",
				req.SlotID, req.Pax, capErr.Available)
			handlers.RespondJSON(w, http.StatusConflict, InsufficientCapacityResponse{
				Error:        fmt.Sprintf(msgInsufficientCapacity, capErr.Available),
				AvailablePax: capErr.Available,
			})

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createReservation.ErrCourseNotFound):
			h.logger.Warn("POST /reservations - Course not found: course_id=%s", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: slot_id=%s", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrCourseInactive):
			h.logger.Warn("POST /reservations - Course inactive: course_id=%s", req.CourseID)
			handlers.RespondConflict(w, msgCourseInactive)

		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot unavailable: slot_id=%s", req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createReservation.ErrSlotCourseMismatch):
			h.logger.Warn("POST /reservations - Slot/course mismatch: slot_id=%s, course_id=%s", req.SlotID, req.CourseID)
			handlers.RespondConflict(w, msgSlotCourseMismatch)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%s, slot_id=%s, error=%v",
				customerID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, number=%s, customer_id=%s",
		result.ID, result.BookingNumber, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
