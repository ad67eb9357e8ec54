package edit_slot_field

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

type SlotsService interface {
	EditField(ctx context.Context, slotID int64, req *models.EditFieldRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
