package domain

import "github.com/m04kA/Clinic-AppointmentService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Generation defaults
const (
	// DefaultHorizonDays горизонт генерации расписания в рабочих днях
	DefaultHorizonDays = 14

	// MaxHorizonDays верхняя граница горизонта за один запуск генерации
	MaxHorizonDays = 90
)

// Business validation constants
const (
	MaxNoteLength        = 500
	MaxSpecialtyLength   = 100
	MaxPatientNameLength = 200
)

// TimeGrid фиксированная сетка времен приёма на один рабочий день
// Порядок элементов определяет порядок ротации врачей внутри дня
var TimeGrid = []types.TimeString{
	"09:00",
	"10:30",
	"12:00",
	"13:30",
	"15:00",
	"16:30",
}

// InTimeGrid reports whether t is one of the fixed daily grid positions
func InTimeGrid(t types.TimeString) bool {
	for _, g := range TimeGrid {
		if g == t {
			return true
		}
	}
	return false
}

// ActivePoolStatuses статусы слотов, занимающих место в расписании
// Используется при проверке уникальности тройки (дата, время, специальность)
var ActivePoolStatuses = []SlotStatus{
	StatusAvailable,
	StatusReserved,
	StatusAttended,
}
