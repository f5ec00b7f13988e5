package get_cancellation_policy

import (
	"net/http"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
)

type Handler struct {
	service CancellationService
	logger  Logger
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cancellation-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.ListPolicy(r.Context())
	if err != nil {
		h.logger.Error("GET /cancellation-policy - Failed to list policy: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromTiers(tiers))
}
