package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/schedule"
)

// Request модель запроса на получение доступных дат
type Request struct {
	BusinessID  int64 // ID бизнеса
	HorizonDays int   // Горизонт в днях; 0 — значение по умолчанию
}

// Response модель ответа со списком доступных дат
type Response struct {
	BusinessID int64
	Dates      []string // ISO даты по возрастанию
}

// UseCase use case для получения ближайших дат, доступных для бронирования
// Фильтрует только правилами доступности (выходные, заблокированные даты):
// наличие конкретных свободных слотов проверяет get_available_times
type UseCase struct {
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settingsRepo SettingsRepository, logger Logger) *UseCase {
	return &UseCase{
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: business=%d", req.BusinessID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = domain.DefaultAvailableDatesHorizonDays
	}

	settings, err := uc.settingsRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetAvailableDates: business id=%d has no settings", req.BusinessID)
			return nil, ErrBusinessNotConfigured
		}
		uc.logger.Error("GetAvailableDates: failed to get settings for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	dates := make([]string, 0, horizon)
	for i := 0; i < horizon; i++ {
		date := now.AddDate(0, 0, i)
		if schedule.IsDateAvailable(date, settings) {
			dates = append(dates, date.Format(domain.DateFormat))
		}
	}

	uc.logger.Info("GetAvailableDates: %d of %d days available for business=%d",
		len(dates), horizon, req.BusinessID)

	return &Response{
		BusinessID: req.BusinessID,
		Dates:      dates,
	}, nil
}
