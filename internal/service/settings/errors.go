package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда у бизнеса нет настроек расписания
	ErrSettingsNotFound = errors.New("business settings not found")

	// ErrInvalidWorkingHours возвращается при некорректном расписании рабочих часов
	ErrInvalidWorkingHours = errors.New("invalid working hours")

	// ErrInvalidBreaks возвращается при перерывах вне рабочего окна или с start >= end
	ErrInvalidBreaks = errors.New("invalid break windows")

	// ErrInvalidBlockedDates возвращается при некорректном формате заблокированных дат
	ErrInvalidBlockedDates = errors.New("invalid blocked dates")

	// ErrInvalidDuration возвращается при недопустимой длительности слота
	ErrInvalidDuration = errors.New("invalid appointment duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
