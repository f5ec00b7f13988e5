package issue_refund

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	issueRefund "github.com/m04kA/SMC-HeliTourService/internal/usecase/issue_refund"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "бронирование не найдено"
	msgNotRefundable       = "бронирование не оплачено или уже возвращено полностью"
	msgRefundFailed        = "платежный шлюз отклонил возврат, его можно повторить"
)

type Handler struct {
	useCase IssueRefundUseCase
	logger  Logger
}

func NewHandler(useCase IssueRefundUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/reservations/{reservationId}/refunds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/reservations/{id}/refunds - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req IssueRefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reservations/{id}/refunds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID, actor))
	if err != nil {
		switch {
		case errors.Is(err, issueRefund.ErrInvalidInput):
			h.logger.Warn("POST /admin/reservations/{id}/refunds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, issueRefund.ErrReservationNotFound):
			h.logger.Warn("POST /admin/reservations/{id}/refunds - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, issueRefund.ErrNotRefundable):
			h.logger.Warn("POST /admin/reservations/{id}/refunds - Not refundable: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondConflict(w, msgNotRefundable)

		case errors.Is(err, issueRefund.ErrRefundFailed):
			h.logger.Warn("POST /admin/reservations/{id}/refunds - Refund failed: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondJSON(w, http.StatusBadGateway, RefundFailedResponse{
				Error:  msgRefundFailed,
				Refund: FromUseCaseResponse(result),
			})

		default:
			h.logger.Error("POST /admin/reservations/{id}/refunds - Failed to issue refund: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/reservations/{id}/refunds - Refund issued: reservation_id=%s, refund_id=%s, amount=%d, by=%s",
		reservationID, result.ID, result.Amount, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
