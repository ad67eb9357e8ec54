package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	ListTriples(ctx context.Context) (map[domain.TripleKey]struct{}, error)
	MaxDate(ctx context.Context) (*time.Time, error)
	CountGeneratedDates(ctx context.Context, specialty string) (int, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	ListEligibleDoctors(ctx context.Context) ([]*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
