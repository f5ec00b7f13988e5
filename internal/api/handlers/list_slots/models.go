package list_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Slots     []handlers.SlotResponse `json:"slots"`
}

// ParseFilter собирает фильтр из query параметров:
// startDate, endDate (обязательные), courseId, unassigned, status
func ParseFilter(q url.Values) (domain.SlotsFilter, error) {
	var filter domain.SlotsFilter

	startDate, err := time.Parse(domain.DateFormat, q.Get("startDate"))
	if err != nil {
		return filter, fmt.Errorf("startDate: %w", err)
	}
	endDate, err := time.Parse(domain.DateFormat, q.Get("endDate"))
	if err != nil {
		return filter, fmt.Errorf("endDate: %w", err)
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	if raw := q.Get("courseId"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("courseId: %w", err)
		}
		filter.CourseID = &courseID
	}

	if raw := q.Get("unassigned"); raw != "" {
		unassigned, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("unassigned: %w", err)
		}
		filter.UnassignedOnly = unassigned
	}

	if raw := q.Get("status"); raw != "" {
		status := domain.SlotStatus(raw)
		if !status.IsValid() {
			return filter, fmt.Errorf("status: unknown value %q", raw)
		}
		filter.Status = &status
	}

	return filter, nil
}

// FromSlots конвертирует слоты в HTTP response
func FromSlots(filter domain.SlotsFilter, slots []*domain.Slot) *SlotsResponse {
	resp := &SlotsResponse{
		StartDate: filter.StartDate.Format(domain.DateFormat),
		EndDate:   filter.EndDate.Format(domain.DateFormat),
		Slots:     make([]handlers.SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, handlers.NewSlotResponse(s))
	}
	return resp
}
