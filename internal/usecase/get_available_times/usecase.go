package get_available_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/catalog"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/schedule"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// UseCase use case для получения доступного времени на дату
// Доступность всегда пересчитывается по текущим данным — результаты
// между запросами не кэшируются
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	catalogRepo     CatalogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		catalogRepo:     catalogRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки доступности бизнеса
	settings, err := uc.settingsRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetAvailableTimes: business id=%d has no settings", req.BusinessID)
			return nil, ErrBusinessNotConfigured
		}
		uc.logger.Error("GetAvailableTimes: failed to get settings for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Определяем длительность слота: услуга или значение по умолчанию
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}
	if duration == 0 {
		duration = settings.AppointmentDurationMinutes
	}
	if duration == 0 {
		duration = domain.DefaultAppointmentDurationMinutes
	}

	// 5. Проверяем существование сотрудника, если он указан
	if req.EmployeeID != nil {
		if _, err := uc.catalogRepo.GetEmployeeByID(ctx, req.BusinessID, *req.EmployeeID); err != nil {
			if errors.Is(err, catalog.ErrEmployeeNotFound) {
				uc.logger.Warn("GetAvailableTimes: employee id=%d not found in business id=%d",
					*req.EmployeeID, req.BusinessID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("GetAvailableTimes: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
	}

	// 6. Генерируем кандидатов: рабочее окно минус перерывы минус same-day буфер
	candidates, err := schedule.AvailableTimes(req.Date, duration, settings, now)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// Закрытый/заблокированный день — валидный пустой результат, не ошибка
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableTimes: no candidate slots for business=%d on %s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return uc.response(req, duration, candidates), nil
	}

	// 7. Получаем активные приемы на эту дату
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      req.BusinessID,
		EmployeeID:      req.EmployeeID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Убираем слоты, пересекающиеся с существующими приемами
	free := schedule.FilterBooked(candidates, duration, appointments, req.EmployeeID)

	uc.logger.Info("GetAvailableTimes: %d of %d slots free for business=%d on %s",
		len(free), len(candidates), req.BusinessID, req.Date.Format(domain.DateFormat))

	return uc.response(req, duration, free), nil
}

// resolveDuration возвращает длительность услуги или 0, если услуга не указана
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.ServiceID == 0 {
		return 0, nil
	}

	service, err := uc.catalogRepo.GetServiceByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableTimes: service id=%d not found", req.ServiceID)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get service id=%d: %v", req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return service.DurationMinutes, nil
}

func (uc *UseCase) response(req *Request, duration int, times []types.TimeString) *Response {
	return &Response{
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		EmployeeID:      req.EmployeeID,
		Date:            req.Date,
		DurationMinutes: duration,
		Times:           times,
	}
}
