package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// Ошибки разбора FieldEdit
var (
	ErrUnknownEditField = errors.New("domain: unknown editable field")
	ErrInvalidEditValue = errors.New("domain: invalid value for field edit")
)

// FieldEdit типизированное редактирование одного поля слота администратором.
// Каждый вариант несёт уже проверенное значение своего поля — вместо
// диспетчеризации по строковому имени поля
type FieldEdit interface {
	// Column имя колонки слота, которую меняет правка
	Column() string
	// Value новое значение в представлении для хранилища
	Value() interface{}
}

// DateEdit перенос слота на другую дату
type DateEdit struct {
	Date time.Time
}

func (e DateEdit) Column() string     { return "slot_date" }
func (e DateEdit) Value() interface{} { return e.Date }

// TimeEdit перенос слота на другое время сетки
type TimeEdit struct {
	Time types.TimeString
}

func (e TimeEdit) Column() string     { return "slot_time" }
func (e TimeEdit) Value() interface{} { return e.Time }

// SpecialtyEdit смена специальности слота
type SpecialtyEdit struct {
	Specialty string
}

func (e SpecialtyEdit) Column() string     { return "specialty" }
func (e SpecialtyEdit) Value() interface{} { return e.Specialty }

// StatusEdit принудительная смена статуса слота
type StatusEdit struct {
	Status SlotStatus
}

func (e StatusEdit) Column() string     { return "status" }
func (e StatusEdit) Value() interface{} { return e.Status }

// ParseFieldEdit разбирает пару (field, value) в типизированный вариант
// с валидацией значения по правилам конкретного поля
func ParseFieldEdit(field, value string) (FieldEdit, error) {
	switch field {
	case "date":
		d, err := time.Parse(DateFormat, value)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidEditValue, value)
		}
		return DateEdit{Date: d}, nil

	case "time":
		t, err := types.NewTimeStringFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidEditValue, value)
		}
		if !InTimeGrid(t) {
			return nil, fmt.Errorf("%w: time %q is not in the daily grid", ErrInvalidEditValue, value)
		}
		return TimeEdit{Time: t}, nil

	case "specialty":
		if value == "" || len(value) > MaxSpecialtyLength {
			return nil, fmt.Errorf("%w: specialty must be non-empty and at most %d characters",
				ErrInvalidEditValue, MaxSpecialtyLength)
		}
		return SpecialtyEdit{Specialty: value}, nil

	case "status":
		status, ok := ParseSlotStatus(value)
		if !ok {
			return nil, fmt.Errorf("%w: status %q", ErrInvalidEditValue, value)
		}
		return StatusEdit{Status: status}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEditField, field)
	}
}
