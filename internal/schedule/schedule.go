// Package schedule содержит чистую календарную арифметику бронирования:
// генерацию слотов из рабочих часов, правила доступности дат и фильтрацию
// слотов по перерывам и существующим приемам. Пакет не делает I/O и
// детерминирован при фиксированном now — все entry points (HTTP форма,
// чат-ассистент) используют эти функции, дублирования логики по слоям нет.
package schedule

import (
	"fmt"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// GenerateSlots генерирует упорядоченный список времен начала слотов
// в полуинтервале [open, close) с шагом stepMinutes
// Слот включается, только если целиком помещается до close:
// количество слотов равно floor((close-open)/step)
func GenerateSlots(open, close types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: step=%d", ErrInvalidDuration, stepMinutes)
	}

	if !open.IsBefore(close) {
		return nil, fmt.Errorf("%w: open=%s close=%s", ErrInvalidWindow, open, close)
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slotEnd, err := current.AddMinutes(stepMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(close) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots, nil
}

// IsDateAvailable проверяет, является ли дата рабочим днем бизнеса:
// дата не заблокирована и день недели не помечен как выходной
func IsDateAvailable(date time.Time, settings *domain.BusinessSettings) bool {
	_, ok := WorkingWindowFor(date, settings)
	return ok
}

// WorkingWindowFor возвращает рабочее окно (open/close) на указанную дату
// Второй результат false, если дата недоступна: заблокирована, день закрыт
// или для дня нет записи в расписании
func WorkingWindowFor(date time.Time, settings *domain.BusinessSettings) (domain.DaySchedule, bool) {
	if settings.IsBlocked(date) {
		return domain.DaySchedule{IsClosed: true}, false
	}

	day, found := settings.ScheduleFor(date)
	if !found || day.IsClosed {
		return domain.DaySchedule{IsClosed: true}, false
	}

	return day, true
}

// AvailableTimes возвращает все теоретически доступные слоты на дату:
// слоты рабочего окна за вычетом перерывов и, для сегодняшней даты,
// слотов раньше now + SameDayLeadTimeMinutes
// Пустой результат — валидный ответ ("нет свободного времени"), не ошибка
func AvailableTimes(
	date time.Time,
	durationMinutes int,
	settings *domain.BusinessSettings,
	now time.Time,
) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration=%d", ErrInvalidDuration, durationMinutes)
	}

	// Даты в прошлом не бронируются
	if IsDateInPast(date, now) {
		return []types.TimeString{}, nil
	}

	window, ok := WorkingWindowFor(date, settings)
	if !ok {
		return []types.TimeString{}, nil
	}

	slots, err := GenerateSlots(window.Open, window.Close, durationMinutes)
	if err != nil {
		return nil, err
	}

	// Исключаем слоты, окно которых пересекает любой перерыв
	if len(settings.Breaks) > 0 {
		filtered := make([]types.TimeString, 0, len(slots))
		for _, slot := range slots {
			overlaps, err := overlapsAnyBreak(slot, durationMinutes, settings.Breaks)
			if err != nil {
				return nil, err
			}
			if !overlaps {
				filtered = append(filtered, slot)
			}
		}
		slots = filtered
	}

	// Для бронирования на сегодня отсекаем слоты раньше now + буфер
	if IsSameDay(date, now) {
		minAllowed, err := types.NewTimeString(now).AddMinutes(domain.SameDayLeadTimeMinutes)
		if err != nil {
			return nil, err
		}

		filtered := make([]types.TimeString, 0, len(slots))
		for _, slot := range slots {
			if !slot.IsBefore(minAllowed) {
				filtered = append(filtered, slot)
			}
		}
		slots = filtered
	}

	return slots, nil
}

// FilterBooked убирает из candidates слоты, окно которых пересекается с
// существующим активным приемом. Если employeeID задан, приемы других
// сотрудников не учитываются; приемы без сотрудника блокируют всех.
// Пересечение проверяется точным сравнением полуинтервалов: соприкасающиеся
// границы (конец одного == начало другого) пересечением не считаются.
func FilterBooked(
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	employeeID *int64,
) []types.TimeString {
	free := make([]types.TimeString, 0, len(candidates))

	for _, slot := range candidates {
		if CountOverlapping(slot, durationMinutes, appointments, employeeID) == 0 {
			free = append(free, slot)
		}
	}

	return free
}

// CountOverlapping подсчитывает активные приемы, пересекающиеся со слотом
// [start, start+durationMinutes)
func CountOverlapping(
	start types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	employeeID *int64,
) int {
	slotEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0

	for _, appt := range appointments {
		// Отмененные и no-show приемы слот не занимают
		if !appt.BlocksSlot() {
			continue
		}

		// Прием другого сотрудника не блокирует слот этого сотрудника;
		// прием без сотрудника — общий для всего бизнеса
		if employeeID != nil && appt.EmployeeID != nil && *appt.EmployeeID != *employeeID {
			continue
		}

		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			continue
		}

		// Строгие неравенства: граничащие интервалы не пересекаются
		if appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(start) {
			count++
		}
	}

	return count
}

// overlapsAnyBreak проверяет пересечение окна слота с любым перерывом
func overlapsAnyBreak(slot types.TimeString, durationMinutes int, breaks []domain.BreakWindow) (bool, error) {
	slotEnd, err := slot.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, br := range breaks {
		if br.Start.IsBefore(slotEnd) && br.End.IsAfter(slot) {
			return true, nil
		}
	}

	return false, nil
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
