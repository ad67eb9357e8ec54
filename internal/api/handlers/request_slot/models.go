package request_slot

import (
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// RequestSlotRequest HTTP request model
type RequestSlotRequest struct {
	Specialty   string `json:"specialty"`
	Date        string `json:"date"` // "2026-09-07"
	Time        string `json:"time"` // "10:30"
	PatientName string `json:"patientName"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RequestSlotRequest) ToServiceRequest(patientID int64) (*models.RequestSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &models.RequestSlotRequest{
		Specialty:   r.Specialty,
		Date:        date,
		Time:        slotTime,
		PatientID:   patientID,
		PatientName: r.PatientName,
	}, nil
}
