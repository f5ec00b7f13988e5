package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/cancel_reservation"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotCancel        = "бронирование нельзя отменить"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/cancel
// Неудачный возврат не меняет код ответа: бронирование отменено, refund.status = failed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID, actor))
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/cancel - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/cancel - Access denied: reservation_id=%s, user_id=%s",
				reservationID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelReservation.ErrCannotCancel):
			h.logger.Warn("POST /reservations/{id}/cancel - Cannot cancel: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Refund != nil && result.Refund.Status == string(domain.RefundStatusFailed) {
		h.logger.Warn("POST /reservations/{id}/cancel - Cancelled without refund: reservation_id=%s, error=%s",
			reservationID, result.Refund.Error)
	}

	h.logger.Info("POST /reservations/{id}/cancel - Reservation cancelled: reservation_id=%s, by=%s, fee=%d",
		reservationID, actor.ID, result.CancellationFee)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
