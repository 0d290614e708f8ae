package schedule

import "errors"

var (
	// ErrInvalidDuration возвращается при нулевом или отрицательном шаге/длительности
	ErrInvalidDuration = errors.New("schedule: duration must be positive")

	// ErrInvalidWindow возвращается при некорректном рабочем окне (open >= close)
	ErrInvalidWindow = errors.New("schedule: invalid working window")
)
