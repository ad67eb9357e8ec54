package reserve_slot

import (
	"time"

	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	Specialty   string           // Специальность приёма
	Date        time.Time        // Дата приёма (без времени)
	Time        types.TimeString // Время слота (например, "10:30")
	PatientID   int64            // ID пациента
	PatientName string           // Отображаемое имя пациента
}

// Response модель ответа с забронированным слотом
type Response struct {
	SlotID   int64  // ID забронированного слота
	DoctorID *int64 // Назначенный врач (может отсутствовать)
}
