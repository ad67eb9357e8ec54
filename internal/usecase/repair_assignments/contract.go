package repair_assignments

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListUnassigned(ctx context.Context) ([]*domain.Slot, error)
	AssignDoctor(ctx context.Context, id int64, doctorID int64) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	ListEligibleDoctors(ctx context.Context) ([]*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
