package slots

import (
	"context"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	Release(ctx context.Context, id int64) error
	CancelRequest(ctx context.Context, id int64) error
	MarkAttended(ctx context.Context, id int64, note *string) error
	SetNote(ctx context.Context, id int64, note string) error
	UpdateField(ctx context.Context, id int64, edit domain.FieldEdit) error
	ReassignSpecialty(ctx context.Context, specialty string, doctorID int64) (int64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
