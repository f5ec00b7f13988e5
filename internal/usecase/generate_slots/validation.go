package generate_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/types"
)

// validateRequest проверяет запрос целиком до обращения к БД
func validateRequest(req *Request, cfg Config) (*plan, error) {
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if days := int(endDate.Sub(startDate).Hours() / 24); days > cfg.MaxRangeDays {
		return nil, fmt.Errorf("%w: date range must not exceed %d days, got %d", ErrInvalidInput, cfg.MaxRangeDays, days)
	}

	if len(req.Times) == 0 {
		return nil, fmt.Errorf("%w: times must not be empty", ErrInvalidInput)
	}

	// Дубликаты времени схлопываются, порядок сохраняется
	seen := make(map[types.TimeString]struct{}, len(req.Times))
	times := make([]types.TimeString, 0, len(req.Times))
	for _, raw := range req.Times {
		t, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}

	maxPax := cfg.DefaultMaxPax
	if req.MaxPax != nil {
		maxPax = *req.MaxPax
	}
	if maxPax <= 0 {
		return nil, fmt.Errorf("%w: maxPax must be positive", ErrInvalidInput)
	}

	var courseID *uuid.UUID
	if req.CourseID != nil && strings.TrimSpace(*req.CourseID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.CourseID))
		if err != nil {
			return nil, fmt.Errorf("%w: courseId %q is not a valid UUID", ErrInvalidInput, *req.CourseID)
		}
		courseID = &id
	}

	return &plan{
		startDate: startDate,
		endDate:   endDate,
		times:     times,
		maxPax:    maxPax,
		courseID:  courseID,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q must be in YYYY-MM-DD format", ErrInvalidInput, field, value)
	}
	return date, nil
}
