package repair_assignments

import (
	"context"

	repairAssignments "github.com/m04kA/Clinic-AppointmentService/internal/usecase/repair_assignments"
)

type RepairAssignmentsUseCase interface {
	Execute(ctx context.Context) (*repairAssignments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
