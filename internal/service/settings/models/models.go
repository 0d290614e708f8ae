package models

import (
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// Request модели

// DayScheduleDTO рабочее окно одного дня недели
type DayScheduleDTO struct {
	Weekday  string `json:"weekday"` // "monday" ... "sunday"
	Open     string `json:"open,omitempty"`
	Close    string `json:"close,omitempty"`
	IsClosed bool   `json:"isClosed,omitempty"`
}

// BreakWindowDTO ежедневный перерыв
type BreakWindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateSettingsRequest запрос на полное обновление настроек расписания
type UpdateSettingsRequest struct {
	WorkingHours               []DayScheduleDTO `json:"workingHours"`
	Breaks                     []BreakWindowDTO `json:"breaks"`
	BlockedDates               []string         `json:"blockedDates"` // ISO даты "2006-01-02"
	AppointmentDurationMinutes int              `json:"appointmentDurationMinutes"`
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings(businessID int64) *domain.BusinessSettings {
	settings := &domain.BusinessSettings{
		BusinessID:                 businessID,
		WorkingHours:               make([]domain.DaySchedule, len(r.WorkingHours)),
		Breaks:                     make([]domain.BreakWindow, len(r.Breaks)),
		BlockedDates:               r.BlockedDates,
		AppointmentDurationMinutes: r.AppointmentDurationMinutes,
	}

	for i, day := range r.WorkingHours {
		settings.WorkingHours[i] = domain.DaySchedule{
			Weekday:  day.Weekday,
			Open:     types.TimeString(day.Open),
			Close:    types.TimeString(day.Close),
			IsClosed: day.IsClosed,
		}
	}

	for i, brk := range r.Breaks {
		settings.Breaks[i] = domain.BreakWindow{
			Start: types.TimeString(brk.Start),
			End:   types.TimeString(brk.End),
		}
	}

	return settings
}

// Response модели

// SettingsResponse ответ с настройками расписания бизнеса
type SettingsResponse struct {
	ID                         int64            `json:"id"`
	BusinessID                 int64            `json:"businessId"`
	WorkingHours               []DayScheduleDTO `json:"workingHours"`
	Breaks                     []BreakWindowDTO `json:"breaks"`
	BlockedDates               []string         `json:"blockedDates"`
	AppointmentDurationMinutes int              `json:"appointmentDurationMinutes"`
	CreatedAt                  time.Time        `json:"createdAt"`
	UpdatedAt                  time.Time        `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BusinessSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ID:                         s.ID,
		BusinessID:                 s.BusinessID,
		WorkingHours:               make([]DayScheduleDTO, len(s.WorkingHours)),
		Breaks:                     make([]BreakWindowDTO, len(s.Breaks)),
		BlockedDates:               s.BlockedDates,
		AppointmentDurationMinutes: s.AppointmentDurationMinutes,
		CreatedAt:                  s.CreatedAt,
		UpdatedAt:                  s.UpdatedAt,
	}

	if resp.BlockedDates == nil {
		resp.BlockedDates = []string{}
	}

	for i, day := range s.WorkingHours {
		resp.WorkingHours[i] = DayScheduleDTO{
			Weekday:  day.Weekday,
			Open:     day.Open.String(),
			Close:    day.Close.String(),
			IsClosed: day.IsClosed,
		}
	}

	for i, brk := range s.Breaks {
		resp.Breaks[i] = BreakWindowDTO{
			Start: brk.Start.String(),
			End:   brk.End.String(),
		}
	}

	return resp
}
