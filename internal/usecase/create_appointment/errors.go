package create_appointment

import "errors"

var (
	// ErrBusinessNotConfigured возвращается, когда у бизнеса нет настроек расписания
	ErrBusinessNotConfigured = errors.New("create_appointment: business is not configured")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrInvalidDate возвращается при дате в прошлом или заблокированной дате
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrBusinessClosed возвращается, когда бизнес закрыт в указанную дату
	ErrBusinessClosed = errors.New("create_appointment: business is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранное время занято или не входит в расписание
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrTooLateToBook возвращается при нарушении буфера для бронирования на сегодня
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
