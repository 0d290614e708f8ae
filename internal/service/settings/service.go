package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/settings/models"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// Service сервис для работы с настройками расписания бизнеса
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки расписания бизнеса
func (s *Service) Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: settings for business=%d not found", businessID)
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update полностью заменяет настройки расписания бизнеса
// Если настроек еще нет, создает их (upsert-семантика)
func (s *Service) Update(ctx context.Context, businessID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if err := validateSettings(req); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", businessID, err)
		return nil, err
	}

	settings := req.ToDomainSettings(businessID)

	existing, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	switch {
	case err == nil:
		settings.ID = existing.ID
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			s.logger.Error("Update: repository error for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	case errors.Is(err, settingsRepo.ErrSettingsNotFound):
		created, err := s.settingsRepo.Create(ctx, settings)
		if err != nil {
			s.logger.Error("Update: failed to create settings for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		settings = created
	default:
		s.logger.Error("Update: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for business=%d", businessID)

	// Перечитываем, чтобы вернуть актуальные timestamps
	updated, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		s.logger.Error("Update: failed to reload settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(updated), nil
}

// validateSettings проверяет консистентность настроек расписания
func validateSettings(req *models.UpdateSettingsRequest) error {
	if err := validateWorkingHours(req.WorkingHours); err != nil {
		return err
	}

	if err := validateBreaks(req.Breaks); err != nil {
		return err
	}

	// Заблокированные даты должны быть валидными ISO датами
	for _, blocked := range req.BlockedDates {
		if _, err := time.Parse(domain.DateFormat, blocked); err != nil {
			return fmt.Errorf("%w: %q is not a valid date", ErrInvalidBlockedDates, blocked)
		}
	}

	if req.AppointmentDurationMinutes < domain.MinServiceDurationMinutes ||
		req.AppointmentDurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}

// validateWorkingHours проверяет, что расписание содержит ровно по одной
// записи на каждый день недели и open < close для рабочих дней
func validateWorkingHours(workingHours []models.DayScheduleDTO) error {
	validWeekdays := map[string]bool{
		"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
		"friday": true, "saturday": true, "sunday": true,
	}

	if len(workingHours) != len(validWeekdays) {
		return fmt.Errorf("%w: expected %d day entries, got %d",
			ErrInvalidWorkingHours, len(validWeekdays), len(workingHours))
	}

	seen := make(map[string]bool, len(workingHours))
	for _, day := range workingHours {
		if !validWeekdays[day.Weekday] {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidWorkingHours, day.Weekday)
		}
		if seen[day.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %q", ErrInvalidWorkingHours, day.Weekday)
		}
		seen[day.Weekday] = true

		// Для закрытого дня рабочее окно не проверяется
		if day.IsClosed {
			continue
		}

		open := types.TimeString(day.Open)
		closeAt := types.TimeString(day.Close)

		if err := open.Validate(); err != nil {
			return fmt.Errorf("%w: invalid open time for %s: %v", ErrInvalidWorkingHours, day.Weekday, err)
		}
		if err := closeAt.Validate(); err != nil {
			return fmt.Errorf("%w: invalid close time for %s: %v", ErrInvalidWorkingHours, day.Weekday, err)
		}
		if !open.IsBefore(closeAt) {
			return fmt.Errorf("%w: open must be before close for %s", ErrInvalidWorkingHours, day.Weekday)
		}
	}

	return nil
}

// validateBreaks проверяет формат и порядок границ перерывов
func validateBreaks(breaks []models.BreakWindowDTO) error {
	for _, brk := range breaks {
		start := types.TimeString(brk.Start)
		end := types.TimeString(brk.End)

		if err := start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid break start: %v", ErrInvalidBreaks, err)
		}
		if err := end.Validate(); err != nil {
			return fmt.Errorf("%w: invalid break end: %v", ErrInvalidBreaks, err)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: break start must be before end", ErrInvalidBreaks)
		}
	}

	return nil
}
