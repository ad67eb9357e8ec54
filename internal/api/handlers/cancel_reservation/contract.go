package cancel_reservation

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

type SlotsService interface {
	Cancel(ctx context.Context, slotID int64, actor models.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
