package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-HeliTourService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCourseNotFound     = "курс не найден"
	msgGenerationFailed   = "не удалось создать слоты"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, generateSlots.ErrCourseNotFound):
			h.logger.Warn("POST /admin/slots/generate - Course not found: course_id=%v", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		default:
			h.logger.Error("POST /admin/slots/generate - Failed to generate slots: %s..%s, error=%v",
				req.StartDate, req.EndDate, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgGenerationFailed)
		}
		return
	}

	h.logger.Info("POST /admin/slots/generate - Slots generated: %s..%s, created=%d, skipped=%d, warnings=%d",
		req.StartDate, req.EndDate, result.Created, result.Skipped, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
