package get_patient_slots

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

type SlotsService interface {
	ListPatientSlots(ctx context.Context, patientID int64) (*models.PatientSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
