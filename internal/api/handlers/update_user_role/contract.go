package update_user_role

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/service/users/models"
)

type UsersService interface {
	ChangeRole(ctx context.Context, userID int64, req *models.ChangeRoleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
