package handlers

import (
	"time"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// SlotResponse слот с текущей доступностью
type SlotResponse struct {
	ID              string  `json:"id"`
	CourseID        *string `json:"courseId"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	MaxPax          int     `json:"maxPax"`
	CurrentPax      int     `json:"currentPax"`
	AvailablePax    int     `json:"availablePax"`
	IsFull          bool    `json:"isFull"`
	Status          string  `json:"status"`
	SuspendedReason *string `json:"suspendedReason,omitempty"`
	UpdatedAt       string  `json:"updatedAt"`
}

// NewSlotResponse конвертирует доменный слот в HTTP ответ
func NewSlotResponse(slot *domain.Slot) SlotResponse {
	var courseID *string
	if slot.CourseID != nil {
		id := slot.CourseID.String()
		courseID = &id
	}

	return SlotResponse{
		ID:              slot.ID.String(),
		CourseID:        courseID,
		Date:            slot.Date.Format(domain.DateFormat),
		Time:            slot.Time.String(),
		MaxPax:          slot.MaxPax,
		CurrentPax:      slot.CurrentPax,
		AvailablePax:    slot.AvailablePax(),
		IsFull:          slot.IsFull(),
		Status:          string(slot.Status),
		SuspendedReason: slot.SuspendedReason,
		UpdatedAt:       slot.UpdatedAt.Format(time.RFC3339),
	}
}
