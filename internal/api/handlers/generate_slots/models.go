package generate_slots

import (
	generateSlots "github.com/m04kA/Clinic-AppointmentService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	HorizonDays int     `json:"horizonDays"`
	Specialty   *string `json:"specialty,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Нулевой горизонт заменяется значением по умолчанию
func (r *GenerateSlotsRequest) ToUseCaseRequest(defaultHorizon int) *generateSlots.Request {
	horizon := r.HorizonDays
	if horizon == 0 {
		horizon = defaultHorizon
	}
	return &generateSlots.Request{
		HorizonDays: horizon,
		Specialty:   r.Specialty,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		Created: resp.Created,
		Skipped: resp.Skipped,
	}
}
