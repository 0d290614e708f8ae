package domain

// Default configuration values
const (
	DefaultAppointmentDurationMinutes = 30
	DefaultAvailableDatesHorizonDays  = 30 // горизонт getAvailableDates

	// SameDayLeadTimeMinutes минимальное время между "сейчас" и началом слота
	// при бронировании на сегодня
	SameDayLeadTimeMinutes = 15

	// ConfirmationTokenTTLHours время жизни токена подтверждения записи
	ConfirmationTokenTTLHours = 48
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxNotesLength            = 500
	MaxNameLength             = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы приемов, занимающих свой временной слот
// Используется при подсчете доступных слотов и в exclusion constraint БД
var BlockingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы приемов, не занимающих слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ValidStatuses все допустимые статусы приема
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ParseStatus проверяет и конвертирует строку в AppointmentStatus
func ParseStatus(s string) (AppointmentStatus, bool) {
	for _, status := range ValidStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
