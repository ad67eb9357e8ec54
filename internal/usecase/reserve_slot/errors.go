package reserve_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrNoSlotAvailable возвращается, когда на тройку (специальность, дата,
	// время) нет свободного слота, включая проигрыш конкурентной гонки
	ErrNoSlotAvailable = errors.New("reserve_slot: no slot available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
