package repair_assignments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("repair_assignments: internal error")
)
