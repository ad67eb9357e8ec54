package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyExists возвращается при нарушении уникальности тройки
	// (дата, время, специальность)
	ErrSlotAlreadyExists = errors.New("slot.repository: slot already exists")

	// ErrPreconditionFailed возвращается, когда условное обновление не прошло:
	// слот существует, но его текущий статус не совпал с ожидаемым
	ErrPreconditionFailed = errors.New("slot.repository: slot state precondition failed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
