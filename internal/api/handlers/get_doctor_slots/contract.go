package get_doctor_slots

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

type SlotsService interface {
	ListDoctorSlots(ctx context.Context, doctorID int64) (*models.DoctorSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
