package get_cancellation_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	getQuote "github.com/m04kA/SMC-HeliTourService/internal/usecase/get_cancellation_quote"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidReservation  = "некорректный ID бронирования"
	msgReservationNotFound = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}/cancellation-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id}/cancellation-quote - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.useCase.Execute(r.Context(), &getQuote.Request{
		ReservationID: reservationID,
		Actor:         actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /reservations/{id}/cancellation-quote - Invalid reservation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservation)

		case errors.Is(err, getQuote.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id}/cancellation-quote - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, getQuote.ErrAccessDenied):
			h.logger.Warn("GET /reservations/{id}/cancellation-quote - Access denied: reservation_id=%s, user_id=%s",
				reservationID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reservations/{id}/cancellation-quote - Failed to quote: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
