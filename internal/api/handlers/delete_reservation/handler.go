package delete_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	deleteReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/delete_reservation"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidReservation  = "некорректный ID бронирования"
	msgReservationNotFound = "бронирование не найдено"
	msgCannotDelete        = "завершенное бронирование нельзя удалить"
)

type Handler struct {
	useCase DeleteReservationUseCase
	logger  Logger
}

func NewHandler(useCase DeleteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	err := h.useCase.Execute(r.Context(), &deleteReservation.Request{
		ReservationID: reservationID,
		ActorID:       userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, deleteReservation.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/reservations/{id} - Invalid reservation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservation)

		case errors.Is(err, deleteReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /admin/reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, deleteReservation.ErrCannotDelete):
			h.logger.Warn("DELETE /admin/reservations/{id} - Cannot delete: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgCannotDelete)

		default:
			h.logger.Error("DELETE /admin/reservations/{id} - Failed to delete: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/reservations/{id} - Reservation deleted: reservation_id=%s, by=%s", reservationID, userID)
	w.WriteHeader(http.StatusNoContent)
}
