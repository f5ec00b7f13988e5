package generate_slots

import (
	generateSlots "github.com/m04kA/SMC-HeliTourService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Times     []string `json:"times"`
	MaxPax    *int     `json:"maxPax,omitempty"`
	CourseID  *string  `json:"courseId,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
	Message  string   `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest() *generateSlots.Request {
	return &generateSlots.Request{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Times:     r.Times,
		MaxPax:    r.MaxPax,
		CourseID:  r.CourseID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	warnings := resp.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &GenerateSlotsResponse{
		Created:  resp.Created,
		Skipped:  resp.Skipped,
		Warnings: warnings,
		Message:  resp.Message,
	}
}
