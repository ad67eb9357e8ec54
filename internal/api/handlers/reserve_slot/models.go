package reserve_slot

import (
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	reserveSlot "github.com/m04kA/Clinic-AppointmentService/internal/usecase/reserve_slot"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	Specialty   string `json:"specialty"`
	Date        string `json:"date"` // "2026-09-07"
	Time        string `json:"time"` // "10:30"
	PatientName string `json:"patientName"`
}

// ReserveSlotResponse HTTP response model
type ReserveSlotResponse struct {
	SlotID   int64  `json:"slotId"`
	DoctorID *int64 `json:"doctorId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(patientID int64) (*reserveSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		Specialty:   r.Specialty,
		Date:        date,
		Time:        slotTime,
		PatientID:   patientID,
		PatientName: r.PatientName,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReserveSlotResponse {
	return &ReserveSlotResponse{
		SlotID:   resp.SlotID,
		DoctorID: resp.DoctorID,
	}
}
