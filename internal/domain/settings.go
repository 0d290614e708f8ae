package domain

import (
	"strings"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// DaySchedule represents the working window for one weekday
type DaySchedule struct {
	Weekday  string           `json:"weekday"` // "monday" ... "sunday"
	Open     types.TimeString `json:"open"`
	Close    types.TimeString `json:"close"`
	IsClosed bool             `json:"isClosed"`
}

// BreakWindow represents a recurring daily break during which no slot may start or run
type BreakWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// BusinessSettings holds the availability configuration of a business.
// Exactly one DaySchedule entry per weekday; blocked dates exclude a whole
// calendar date regardless of the weekday schedule.
type BusinessSettings struct {
	ID                         int64
	BusinessID                 int64
	WorkingHours               []DaySchedule
	Breaks                     []BreakWindow
	BlockedDates               []string // ISO даты "2006-01-02"
	AppointmentDurationMinutes int      // длительность слота по умолчанию
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// ScheduleFor returns the working window entry matching the weekday of date
func (s *BusinessSettings) ScheduleFor(date time.Time) (DaySchedule, bool) {
	name := WeekdayName(date.Weekday())
	for _, day := range s.WorkingHours {
		if day.Weekday == name {
			return day, true
		}
	}
	return DaySchedule{IsClosed: true}, false
}

// IsBlocked returns true if the date is in the blocked dates set
func (s *BusinessSettings) IsBlocked(date time.Time) bool {
	iso := date.Format(DateFormat)
	for _, blocked := range s.BlockedDates {
		if blocked == iso {
			return true
		}
	}
	return false
}

// WeekdayName converts time.Weekday to the lowercase name used in settings
func WeekdayName(weekday time.Weekday) string {
	return strings.ToLower(weekday.String())
}

// DefaultWorkingHours returns the onboarding defaults:
// Mon-Fri 09:00-17:00, Sat 10:00-15:00, Sun closed
func DefaultWorkingHours() []DaySchedule {
	return []DaySchedule{
		{Weekday: "monday", Open: "09:00", Close: "17:00"},
		{Weekday: "tuesday", Open: "09:00", Close: "17:00"},
		{Weekday: "wednesday", Open: "09:00", Close: "17:00"},
		{Weekday: "thursday", Open: "09:00", Close: "17:00"},
		{Weekday: "friday", Open: "09:00", Close: "17:00"},
		{Weekday: "saturday", Open: "10:00", Close: "15:00"},
		{Weekday: "sunday", IsClosed: true},
	}
}
