package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	apptRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/appointment"
	custRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/customer"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/appointments/models"
)

// Service сервис для работы с записями на прием
type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// Confirm подтверждает запись по токену из письма (double-opt-in)
// Повторное подтверждение и истекший токен — ошибки, видимые клиенту
func (s *Service) Confirm(ctx context.Context, token string) (*models.AppointmentResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	s.logger.Info("Confirm: confirming appointment by token")

	appt, err := s.appointmentRepo.GetByConfirmationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Confirm: token not found")
			return nil, ErrTokenNotFound
		}
		s.logger.Error("Confirm: repository error: %v", err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if appt.Status == domain.StatusConfirmed {
		s.logger.Warn("Confirm: appointment id=%d is already confirmed", appt.ID)
		return nil, ErrAlreadyConfirmed
	}

	if !appt.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: appointment id=%d cannot be confirmed, status=%s", appt.ID, appt.Status)
		return nil, ErrInvalidTransition
	}

	if appt.TokenExpired(s.timeProvider.Now()) {
		s.logger.Warn("Confirm: token for appointment id=%d expired", appt.ID)
		return nil, ErrTokenExpired
	}

	// UpdateStatus со статусом confirmed также очищает токен
	if err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: failed to update appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", appt.ID)

	appt.Status = domain.StatusConfirmed
	appt.ConfirmationToken = nil
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись
// Отмена возможна только для статусов scheduled и confirmed
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", appointmentID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)

	// Уведомляем клиента асинхронно; статус меняем локально для текста письма
	appt.Status = domain.StatusCancelled
	if req.CancellationReason != "" {
		appt.CancellationReason = &req.CancellationReason
	}
	s.notifier.DispatchCancellation(appt)

	return nil
}

// UpdateStatus обновляет статус записи с проверкой конечного автомата статусов
// Доступно только владельцу бизнеса
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", appointmentID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем допустимость перехода: терминальные статусы не меняются,
	// назад по жизненному циклу двигаться нельзя
	if !appt.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			appt.Status, newStatus, appointmentID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// GetBusinessAppointments получает записи бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, периоду, статусу и включение
// отмененных записей
//
// Примеры использования:
// - Все активные записи: GetBusinessAppointments(ctx, &GetBusinessAppointmentsRequest{BusinessID: 123})
// - Записи сотрудника: указать EmployeeID
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные: IncludeInactive = true
func (s *Service) GetBusinessAppointments(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBusinessAppointments: fetching appointments for business=%d", req.BusinessID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessAppointments: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: successfully fetched %d appointments for business=%d",
		len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetCustomerAppointments получает историю записей клиента
// Возвращает записи от новых к старым, включая отмененные
func (s *Service) GetCustomerAppointments(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d", customerID)

	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%d",
		len(appointments), customerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetCustomerAppointmentsByEmail получает историю записей клиента по email
func (s *Service) GetCustomerAppointmentsByEmail(ctx context.Context, email string) (*models.AppointmentListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.logger.Info("GetCustomerAppointmentsByEmail: looking up customer by email=%s", email)

	cust, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, custRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetCustomerAppointmentsByEmail: customer email=%s not found", email)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomerAppointmentsByEmail: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointmentsByEmail - repository error: %v", ErrInternal, err)
	}

	return s.GetCustomerAppointments(ctx, cust.ID)
}
