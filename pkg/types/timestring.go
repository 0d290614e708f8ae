package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrNegativeTime возвращается, когда арифметика над временем дает отрицательный результат
	ErrNegativeTime = errors.New("time arithmetic produced negative value")
)

// TimeString тип для хранения времени в формате "HH:MM" (например, "10:30")
// Используется для времени начала слотов и рабочих часов, где важна только
// позиция внутри дня, без даты и таймзоны
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение соответствует формату HH:MM
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return nil
}

// Minutes возвращает количество минут с начала дня
// Допускает значения >= 24:00, которые могут появиться как результат AddMinutes
// (например, конец слота, упирающийся в полночь)
func (t TimeString) Minutes() (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return hours*60 + minutes, nil
}

// AddMinutes возвращает новое время, сдвинутое на m минут вперед
// Результат может выйти за пределы суток ("23:30" + 60 -> "24:30"),
// такие значения корректно участвуют в сравнениях внутри одного дня
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += m
	if total < 0 {
		return "", fmt.Errorf("%w: %s %+d minutes", ErrNegativeTime, string(t), m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
// Некорректные значения считаются равными нулю минут
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutesOrZero() < other.minutesOrZero()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutesOrZero() > other.minutesOrZero()
}

// Equal возвращает true, если оба значения указывают на одну минуту дня
func (t TimeString) Equal(other TimeString) bool {
	return t.minutesOrZero() == other.minutesOrZero()
}

func (t TimeString) minutesOrZero() int {
	m, err := t.Minutes()
	if err != nil {
		return 0
	}
	return m
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает string, []byte и time.Time (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		if len(v) > 5 {
			v = v[:5]
		}
		*t = TimeString(v)
		return nil
	case []byte:
		s := string(v)
		if len(s) > 5 {
			s = s[:5]
		}
		*t = TimeString(s)
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}
