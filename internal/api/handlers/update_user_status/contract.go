package update_user_status

import "context"

type UsersService interface {
	SetActive(ctx context.Context, userID int64, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
