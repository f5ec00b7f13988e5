package change_slot_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/slots"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgInvalidTransition  = "недопустимая смена статуса слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleClose POST /api/v1/admin/slots/{slotId}/close
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "close", func(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
		return h.service.Close(ctx, id)
	})
}

// HandleReopen POST /api/v1/admin/slots/{slotId}/reopen
func (h *Handler) HandleReopen(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reopen", func(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
		return h.service.Reopen(ctx, id)
	})
}

// HandleSuspend POST /api/v1/admin/slots/{slotId}/suspend
// Body: {"reason": "..."} - причина обязательна
func (h *Handler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	var req SuspendRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/{id}/suspend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.handle(w, r, "suspend", func(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
		return h.service.Suspend(ctx, id, req.Reason)
	})
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	apply func(ctx context.Context, id uuid.UUID) (*domain.Slot, error),
) {
	slotID, err := uuid.Parse(mux.Vars(r)["slotId"])
	if err != nil {
		h.logger.Warn("POST /admin/slots/{id}/%s - Invalid slot ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := apply(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/{id}/%s - Invalid input: slot_id=%s, error=%v", action, slotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("POST /admin/slots/{id}/%s - Slot not found: slot_id=%s", action, slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("POST /admin/slots/{id}/%s - Invalid transition: slot_id=%s, error=%v", action, slotID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /admin/slots/{id}/%s - Failed to change status: slot_id=%s, error=%v", action, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/{id}/%s - Slot status changed: slot_id=%s, status=%s", action, slotID, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSlotResponse(slot))
}
