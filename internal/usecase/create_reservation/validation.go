package create_reservation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*parsedRequest, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}

	if req.Pax <= 0 {
		return nil, fmt.Errorf("%w: pax must be positive", ErrInvalidInput)
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%w: courseId %q is not a valid UUID", ErrInvalidInput, req.CourseID)
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: slotId %q is not a valid UUID", ErrInvalidInput, req.SlotID)
	}

	if req.PaymentID != nil && strings.TrimSpace(*req.PaymentID) == "" {
		return nil, fmt.Errorf("%w: paymentId must not be blank", ErrInvalidInput)
	}

	return &parsedRequest{courseID: courseID, slotID: slotID}, nil
}
