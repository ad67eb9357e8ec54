package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotConflict возвращается, когда тройка (дата, время, специальность)
	// уже занята другим слотом
	ErrSlotConflict = errors.New("slot already exists for this date, time and specialty")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid slot status transition")

	// ErrNotAssignedDoctor возвращается, когда врач работает с чужим слотом
	ErrNotAssignedDoctor = errors.New("doctor is not assigned to this slot")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrDoctorNotFound возвращается, когда целевой врач не найден
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrNotADoctor возвращается, когда целевой пользователь не является врачом
	ErrNotADoctor = errors.New("target user is not a doctor")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
