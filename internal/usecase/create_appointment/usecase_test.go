package create_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	apptRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/appointment"
	catalogRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/catalog"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	getErr       error
	createErr    error
	created      *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *appt
	created.ID = 42
	created.CreatedAt = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointments, nil
}

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
	err      error
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeCatalogRepo struct {
	service     *domain.Service
	serviceErr  error
	employee    *domain.Employee
	employeeErr error
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, _, _ int64) (*domain.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeCatalogRepo) GetEmployeeByID(_ context.Context, _, _ int64) (*domain.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	return f.employee, nil
}

type fakeCustomerRepo struct {
	err error
}

func (f *fakeCustomerRepo) Create(_ context.Context, cust *domain.Customer) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *cust
	created.ID = 7
	return &created, nil
}

type fakeNotifier struct {
	dispatched []*domain.Appointment
}

func (f *fakeNotifier) DispatchConfirmation(appt *domain.Appointment) {
	f.dispatched = append(f.dispatched, appt)
}

type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type fixtures struct {
	appointmentRepo *fakeAppointmentRepo
	settingsRepo    *fakeSettingsRepo
	catalogRepo     *fakeCatalogRepo
	customerRepo    *fakeCustomerRepo
	notifier        *fakeNotifier
	txManager       *fakeTxManager
	now             time.Time
}

func newFixtures() *fixtures {
	return &fixtures{
		appointmentRepo: &fakeAppointmentRepo{},
		settingsRepo: &fakeSettingsRepo{
			settings: &domain.BusinessSettings{
				ID:                         1,
				BusinessID:                 1,
				WorkingHours:               domain.DefaultWorkingHours(),
				AppointmentDurationMinutes: 30,
			},
		},
		catalogRepo: &fakeCatalogRepo{
			service: &domain.Service{
				ID:              5,
				BusinessID:      1,
				Name:            "Стрижка",
				DurationMinutes: 60,
				Price:           1500,
			},
			employee: &domain.Employee{ID: 3, BusinessID: 1, Name: "Анна"},
		},
		customerRepo: &fakeCustomerRepo{},
		notifier:     &fakeNotifier{},
		txManager:    &fakeTxManager{},
		now:          time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), // вторник
	}
}

func (f *fixtures) useCase() *UseCase {
	uc := NewUseCase(
		f.appointmentRepo,
		f.settingsRepo,
		f.catalogRepo,
		f.customerRepo,
		f.notifier,
		f.txManager,
		&noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: f.now}
	return uc
}

func validRequest() *Request {
	return &Request{
		BusinessID:    1,
		ServiceID:     5,
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), // понедельник
		StartTime:     "10:00",
		CustomerName:  "Иван Петров",
		CustomerEmail: "ivan@example.com",
		CustomerPhone: "+79990001122",
	}
}

func TestExecuteSuccess(t *testing.T) {
	f := newFixtures()
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes, "длительность берется из услуги")
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, int64(7), resp.CustomerID)

	require.NotNil(t, f.appointmentRepo.created)
	created := f.appointmentRepo.created
	require.NotNil(t, created.ConfirmationToken)
	assert.NotEmpty(t, *created.ConfirmationToken)
	require.NotNil(t, created.TokenExpiresAt)
	assert.Equal(t, f.now.Add(domain.ConfirmationTokenTTLHours*time.Hour), *created.TokenExpiresAt)

	require.Len(t, f.notifier.dispatched, 1)
	assert.Equal(t, int64(42), f.notifier.dispatched[0].ID)
}

func TestExecuteDurationFallsBackToSettings(t *testing.T) {
	f := newFixtures()
	f.catalogRepo.service.DurationMinutes = 0
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecuteServiceNotFound(t *testing.T) {
	f := newFixtures()
	f.catalogRepo.serviceErr = catalogRepo.ErrServiceNotFound
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Empty(t, f.notifier.dispatched)
}

func TestExecuteEmployeeNotFound(t *testing.T) {
	f := newFixtures()
	f.catalogRepo.employeeErr = catalogRepo.ErrEmployeeNotFound
	uc := f.useCase()

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecuteBusinessNotConfigured(t *testing.T) {
	f := newFixtures()
	f.settingsRepo.err = settingsRepo.ErrSettingsNotFound
	f.settingsRepo.settings = nil
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBusinessNotConfigured)
}

func TestExecuteBusinessClosed(t *testing.T) {
	f := newFixtures()
	uc := f.useCase()

	req := validRequest()
	req.Date = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBusinessClosed)
}

func TestExecuteBlockedDate(t *testing.T) {
	f := newFixtures()
	f.settingsRepo.settings.BlockedDates = []string{"2026-09-07"}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecutePastDate(t *testing.T) {
	f := newFixtures()
	uc := f.useCase()

	req := validRequest()
	req.Date = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteTooLateToBookSameDay(t *testing.T) {
	f := newFixtures()
	uc := f.useCase()

	// now=10:00, буфер 15 минут: слот 10:00 сегодня уже недоступен
	req := validRequest()
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req.StartTime = "10:00"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteTimeOutsideSlotGrid(t *testing.T) {
	f := newFixtures()
	uc := f.useCase()

	// сетка слотов при 60-минутной услуге: 09:00, 10:00, ...
	req := validRequest()
	req.StartTime = "10:17"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteSlotOverlapsExisting(t *testing.T) {
	f := newFixtures()
	f.appointmentRepo.appointments = []*domain.Appointment{
		{
			BusinessID:      1,
			StartTime:       "09:30",
			DurationMinutes: 60, // кончается в 10:30, пересекает слот 10:00-11:00
			Status:          domain.StatusConfirmed,
		},
	}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.appointmentRepo.created, "запись не должна создаваться")
}

func TestExecuteAdjacentAppointmentDoesNotConflict(t *testing.T) {
	f := newFixtures()
	f.appointmentRepo.appointments = []*domain.Appointment{
		{
			BusinessID:      1,
			StartTime:       "09:00",
			DurationMinutes: 60, // кончается ровно в 10:00
			Status:          domain.StatusConfirmed,
		},
	}
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "10:00", string(resp.StartTime))
}

func TestExecuteConcurrentInsertMapsToSlotNotAvailable(t *testing.T) {
	f := newFixtures()
	f.appointmentRepo.createErr = apptRepo.ErrSlotTaken
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.dispatched)
}

func TestExecuteSerializationFailureAtCommitMapsToSlotNotAvailable(t *testing.T) {
	f := newFixtures()
	// Проигравшая SERIALIZABLE транзакция падает на COMMIT — ошибка приходит
	// обернутой из transaction manager, а не из репозитория
	f.txManager.commitErr = fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.dispatched)
}

func TestExecuteSerializationFailureAtReadMapsToSlotNotAvailable(t *testing.T) {
	f := newFixtures()
	f.appointmentRepo.getErr = apptRepo.ErrSlotTaken
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.appointmentRepo.created)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{
			name:   "нулевой businessID",
			mutate: func(r *Request) { r.BusinessID = 0 },
		},
		{
			name:   "нулевой serviceID",
			mutate: func(r *Request) { r.ServiceID = 0 },
		},
		{
			name:   "пустая дата",
			mutate: func(r *Request) { r.Date = time.Time{} },
		},
		{
			name:   "некорректное время",
			mutate: func(r *Request) { r.StartTime = "25:00" },
		},
		{
			name:   "пустое имя клиента",
			mutate: func(r *Request) { r.CustomerName = "" },
		},
		{
			name:   "некорректный email",
			mutate: func(r *Request) { r.CustomerEmail = "not-an-email" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtures()
			uc := f.useCase()

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
