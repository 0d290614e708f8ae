package domain

import (
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a reserved time slot in the system
type Appointment struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	EmployeeID *int64 // nil, если бизнес не использует сотрудников или слот общий
	CustomerID int64

	Date            time.Time // дата приема (без времени)
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName   string
	ServicePrice  float64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// Double-opt-in confirmation flow
	ConfirmationToken *string
	TokenExpiresAt    *time.Time

	ReminderSent bool
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the appointment occupies its time window
// (scheduled, confirmed and completed appointments block overlapping bookings)
func (a *Appointment) BlocksSlot() bool {
	return a.Status == StatusScheduled ||
		a.Status == StatusConfirmed ||
		a.Status == StatusCompleted
}

// IsTerminal returns true if the appointment is in a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted ||
		a.Status == StatusCancelled ||
		a.Status == StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether moving to next is a valid forward transition.
// State machine:
//
//	scheduled -> confirmed | cancelled
//	confirmed -> completed | cancelled | no_show
//	completed, cancelled, no_show are terminal
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusScheduled:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled || next == StatusNoShow
	default:
		return false
	}
}

// TokenExpired returns true if the confirmation token has expired at the given moment
func (a *Appointment) TokenExpired(now time.Time) bool {
	return a.TokenExpiresAt != nil && now.After(*a.TokenExpiresAt)
}

// BusinessAppointmentsFilter фильтр для получения приемов бизнеса
type BusinessAppointmentsFilter struct {
	BusinessID      int64      // Обязательный параметр
	EmployeeID      *int64     // Фильтр по сотруднику (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *AppointmentStatus
	IncludeInactive bool // Включать ли отмененные и no-show приемы
}
