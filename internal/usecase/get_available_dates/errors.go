package get_available_dates

import "errors"

var (
	// ErrBusinessNotConfigured возвращается, когда у бизнеса нет настроек доступности
	ErrBusinessNotConfigured = errors.New("get_available_dates: business is not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
