package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownRole возвращается при неизвестной роли
	ErrUnknownRole = errors.New("unknown role")

	// ErrLastAdmin возвращается при попытке лишить клинику
	// последнего активного администратора
	ErrLastAdmin = errors.New("cannot demote or deactivate the last administrator")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
