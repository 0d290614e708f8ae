package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	apptRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/appointment"
	catalogRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/catalog"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/schedule"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/ptr"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	catalogRepo     CatalogRepository
	customerRepo    CustomerRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		catalogRepo:     catalogRepo,
		customerRepo:    customerRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных;
// финальную защиту от двойного бронирования дает exclusion constraint в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, service=%d, date=%s, time=%s, email=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found for business id=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем сотрудника, если он указан
	if req.EmployeeID != nil {
		if _, err := uc.catalogRepo.GetEmployeeByID(ctx, req.BusinessID, *req.EmployeeID); err != nil {
			if errors.Is(err, catalogRepo.ErrEmployeeNotFound) {
				uc.logger.Warn("CreateAppointment: employee id=%d not found for business id=%d", *req.EmployeeID, req.BusinessID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем настройки расписания бизнеса
		settings, err := uc.settingsRepo.GetByBusinessID(txCtx, req.BusinessID)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Warn("CreateAppointment: business id=%d is not configured", req.BusinessID)
				return ErrBusinessNotConfigured
			}
			uc.logger.Error("CreateAppointment: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 5.2. Определяем длительность слота
		duration := resolveDuration(service, settings)

		// 5.3. Валидация даты (прошлое, заблокированные даты)
		if err := validateDate(req.Date, now, settings); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 5.4. Проверяем, что бизнес работает в этот день
		if _, open := schedule.WorkingWindowFor(req.Date, settings); !open {
			uc.logger.Warn("CreateAppointment: business is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrBusinessClosed
		}

		// 5.5. Буфер для записи на сегодня
		if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
			return err
		}

		// 5.6. Проверяем, что запрошенное время входит в сетку слотов
		candidates, err := schedule.AvailableTimes(req.Date, duration, settings, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to compute candidate slots: %v", err)
			return fmt.Errorf("%w: failed to compute candidate slots: %v", ErrInternal, err)
		}
		if !containsSlot(candidates, req) {
			uc.logger.Warn("CreateAppointment: time %s is not a valid slot on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.7. Получаем активные приемы на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BusinessAppointmentsFilter{
			BusinessID:      req.BusinessID,
			EmployeeID:      req.EmployeeID,
			StartDate:       ptr.Ptr(req.Date),
			EndDate:         ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s %s lost serialization race at read",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.8. Проверяем, что слот свободен (точное пересечение интервалов)
		if overlapping := schedule.CountOverlapping(req.StartTime, duration, appointments, req.EmployeeID); overlapping > 0 {
			uc.logger.Warn("CreateAppointment: slot %s %s already taken (%d overlapping)",
				req.Date.Format(domain.DateFormat), req.StartTime, overlapping)
			return ErrSlotNotAvailable
		}

		// 5.9. Находим или создаем клиента (upsert по email)
		customer, err := uc.customerRepo.Create(txCtx, &domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to upsert customer email=%s: %v", req.CustomerEmail, err)
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 5.10. Генерируем токен подтверждения
		token := uuid.NewString()
		tokenExpiresAt := now.Add(domain.ConfirmationTokenTTLHours * time.Hour)

		// 5.11. Создаем запись с денормализацией данных
		appt := &domain.Appointment{
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			EmployeeID:      req.EmployeeID,
			CustomerID:      customer.ID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusScheduled,
			// Денормализация данных услуги и клиента
			ServiceName:   service.Name,
			ServicePrice:  service.Price,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
			// Double-opt-in подтверждение
			ConfirmationToken: &token,
			TokenExpiresAt:    &tokenExpiresAt,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Exclusion constraint в БД — финальный арбитр двойного бронирования
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s %s taken by concurrent booking",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигравшая SERIALIZABLE транзакция может упасть с serialization_failure
		// уже на COMMIT, вне методов репозитория; для клиента это тот же конфликт слота
		if apptRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: slot %s %s lost serialization race",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 6. Уведомления отправляются асинхронно после фиксации транзакции;
	// их сбой не влияет на результат бронирования
	uc.notifier.DispatchConfirmation(result)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		BusinessID:      result.BusinessID,
		ServiceID:       result.ServiceID,
		EmployeeID:      result.EmployeeID,
		CustomerID:      result.CustomerID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveDuration определяет длительность слота: услуга -> настройки -> дефолт
func resolveDuration(service *domain.Service, settings *domain.BusinessSettings) int {
	if service.DurationMinutes > 0 {
		return service.DurationMinutes
	}
	if settings.AppointmentDurationMinutes > 0 {
		return settings.AppointmentDurationMinutes
	}
	return domain.DefaultAppointmentDurationMinutes
}

// containsSlot проверяет, что запрошенное время есть среди кандидатов
func containsSlot(candidates []types.TimeString, req *Request) bool {
	for _, slot := range candidates {
		if slot.Equal(req.StartTime) {
			return true
		}
	}
	return false
}
