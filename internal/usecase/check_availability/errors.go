package check_availability

import "errors"

// Ошибки use case проверки доступности слота
var (
	ErrInvalidInput = errors.New("invalid input")
)
