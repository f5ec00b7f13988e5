package cancel_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// validateRequest валидирует входные данные и нормализует причину отмены
func validateRequest(req *Request) (uuid.UUID, *string, error) {
	id, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: reservationId %q is not a valid UUID", ErrInvalidInput, req.ReservationID)
	}

	if req.Actor.ID == "" {
		return uuid.Nil, nil, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.Reason == nil {
		return id, nil, nil
	}

	reason := strings.TrimSpace(*req.Reason)
	if reason == "" {
		return id, nil, nil
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return uuid.Nil, nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return id, &reason, nil
}
