package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	apptRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/appointment"
	custRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/customer"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/appointments/models"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/ptr"
)

type fakeRepo struct {
	appointment *domain.Appointment
	getErr      error
	updateErr   error
	cancelErr   error

	updatedID      int64
	updatedStatus  domain.AppointmentStatus
	cancelledID    int64
	cancelReason   string
	lastFilter     domain.BusinessAppointmentsFilter
	lastCustomerID int64
	list           []*domain.Appointment
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetByConfirmationToken(_ context.Context, token string) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeRepo) GetByCustomerID(_ context.Context, customerID int64) ([]*domain.Appointment, error) {
	f.lastCustomerID = customerID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.list, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledID = id
	f.cancelReason = reason
	return nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}

type fakeNotifier struct {
	cancelled []*domain.Appointment
}

func (f *fakeNotifier) DispatchCancellation(appt *domain.Appointment) {
	f.cancelled = append(f.cancelled, appt)
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

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, notifier *fakeNotifier) *Service {
	return newTestServiceWithCustomers(repo, &fakeCustomerRepo{}, notifier)
}

func newTestServiceWithCustomers(repo *fakeRepo, customers *fakeCustomerRepo, notifier *fakeNotifier) *Service {
	svc := NewService(repo, customers, notifier, &noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func scheduledAppointment() *domain.Appointment {
	token := "a2f1c9d0-0000-0000-0000-000000000001"
	expires := testNow.Add(24 * time.Hour)
	return &domain.Appointment{
		ID:                11,
		BusinessID:        1,
		ServiceID:         5,
		CustomerID:        7,
		Date:              time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:         "10:00",
		DurationMinutes:   60,
		Status:            domain.StatusScheduled,
		ServiceName:       "Стрижка",
		CustomerName:      "Иван Петров",
		CustomerEmail:     "ivan@example.com",
		ConfirmationToken: &token,
		TokenExpiresAt:    &expires,
	}
}

func TestConfirm(t *testing.T) {
	t.Run("успешное подтверждение", func(t *testing.T) {
		repo := &fakeRepo{appointment: scheduledAppointment()}
		svc := newTestService(repo, &fakeNotifier{})

		resp, err := svc.Confirm(context.Background(), *repo.appointment.ConfirmationToken)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, int64(11), repo.updatedID)
		assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
	})

	t.Run("пустой токен", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeNotifier{})

		_, err := svc.Confirm(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("токен не найден", func(t *testing.T) {
		repo := &fakeRepo{getErr: apptRepo.ErrAppointmentNotFound}
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.Confirm(context.Background(), "unknown-token")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("повторное подтверждение", func(t *testing.T) {
		appt := scheduledAppointment()
		appt.Status = domain.StatusConfirmed
		repo := &fakeRepo{appointment: appt}
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.Confirm(context.Background(), *appt.ConfirmationToken)
		assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	})

	t.Run("отмененная запись не подтверждается", func(t *testing.T) {
		appt := scheduledAppointment()
		appt.Status = domain.StatusCancelled
		repo := &fakeRepo{appointment: appt}
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.Confirm(context.Background(), *appt.ConfirmationToken)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("истекший токен", func(t *testing.T) {
		appt := scheduledAppointment()
		expired := testNow.Add(-time.Hour)
		appt.TokenExpiresAt = &expired
		repo := &fakeRepo{appointment: appt}
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.Confirm(context.Background(), *appt.ConfirmationToken)
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.Zero(t, repo.updatedID, "статус не должен меняться")
	})
}

func TestCancel(t *testing.T) {
	t.Run("успешная отмена с причиной", func(t *testing.T) {
		repo := &fakeRepo{appointment: scheduledAppointment()}
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier)

		err := svc.Cancel(context.Background(), 11, &models.CancelAppointmentRequest{
			CancellationReason: "клиент попросил перенести",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), repo.cancelledID)
		assert.Equal(t, "клиент попросил перенести", repo.cancelReason)

		require.Len(t, notifier.cancelled, 1)
		assert.Equal(t, domain.StatusCancelled, notifier.cancelled[0].Status)
		require.NotNil(t, notifier.cancelled[0].CancellationReason)
		assert.Equal(t, "клиент попросил перенести", *notifier.cancelled[0].CancellationReason)
	})

	t.Run("отмена без причины", func(t *testing.T) {
		repo := &fakeRepo{appointment: scheduledAppointment()}
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier)

		err := svc.Cancel(context.Background(), 11, &models.CancelAppointmentRequest{})

		require.NoError(t, err)
		require.Len(t, notifier.cancelled, 1)
		assert.Nil(t, notifier.cancelled[0].CancellationReason)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo := &fakeRepo{getErr: apptRepo.ErrAppointmentNotFound}
		svc := newTestService(repo, &fakeNotifier{})

		err := svc.Cancel(context.Background(), 99, &models.CancelAppointmentRequest{})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("завершенная запись не отменяется", func(t *testing.T) {
		appt := scheduledAppointment()
		appt.Status = domain.StatusCompleted
		repo := &fakeRepo{appointment: appt}
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier)

		err := svc.Cancel(context.Background(), 11, &models.CancelAppointmentRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, notifier.cancelled)
	})
}

func TestUpdateStatus(t *testing.T) {
	transitions := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{name: "scheduled -> confirmed", from: domain.StatusScheduled, to: "confirmed"},
		{name: "scheduled -> cancelled", from: domain.StatusScheduled, to: "cancelled"},
		{name: "confirmed -> completed", from: domain.StatusConfirmed, to: "completed"},
		{name: "confirmed -> no_show", from: domain.StatusConfirmed, to: "no_show"},
		{name: "scheduled -> completed запрещен", from: domain.StatusScheduled, to: "completed", wantErr: ErrInvalidTransition},
		{name: "scheduled -> no_show запрещен", from: domain.StatusScheduled, to: "no_show", wantErr: ErrInvalidTransition},
		{name: "cancelled терминален", from: domain.StatusCancelled, to: "confirmed", wantErr: ErrInvalidTransition},
		{name: "completed терминален", from: domain.StatusCompleted, to: "cancelled", wantErr: ErrInvalidTransition},
		{name: "no_show терминален", from: domain.StatusNoShow, to: "confirmed", wantErr: ErrInvalidTransition},
		{name: "confirmed -> scheduled назад нельзя", from: domain.StatusConfirmed, to: "scheduled", wantErr: ErrInvalidTransition},
	}

	for _, tt := range transitions {
		t.Run(tt.name, func(t *testing.T) {
			appt := scheduledAppointment()
			appt.Status = tt.from
			repo := &fakeRepo{appointment: appt}
			svc := newTestService(repo, &fakeNotifier{})

			err := svc.UpdateStatus(context.Background(), 11, &models.UpdateStatusRequest{Status: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.updatedID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.updatedStatus)
		})
	}

	t.Run("неизвестный статус", func(t *testing.T) {
		repo := &fakeRepo{appointment: scheduledAppointment()}
		svc := newTestService(repo, &fakeNotifier{})

		err := svc.UpdateStatus(context.Background(), 11, &models.UpdateStatusRequest{Status: "pending"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestGetByID(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		repo := &fakeRepo{appointment: scheduledAppointment()}
		svc := newTestService(repo, &fakeNotifier{})

		resp, err := svc.GetByID(context.Background(), 11)

		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.Equal(t, "scheduled", resp.Status)
		assert.Equal(t, "2026-09-07", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("не найдено", func(t *testing.T) {
		repo := &fakeRepo{getErr: apptRepo.ErrAppointmentNotFound}
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestGetBusinessAppointments(t *testing.T) {
	t.Run("фильтр конвертируется в domain", func(t *testing.T) {
		repo := &fakeRepo{list: []*domain.Appointment{scheduledAppointment()}}
		svc := newTestService(repo, &fakeNotifier{})

		resp, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
			BusinessID:      1,
			EmployeeID:      ptr.Ptr(int64(3)),
			StartDate:       ptr.Ptr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:         ptr.Ptr(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)),
			Status:          ptr.Ptr("confirmed"),
			IncludeInactive: true,
		})

		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)

		assert.Equal(t, int64(1), repo.lastFilter.BusinessID)
		require.NotNil(t, repo.lastFilter.EmployeeID)
		assert.Equal(t, int64(3), *repo.lastFilter.EmployeeID)
		require.NotNil(t, repo.lastFilter.StartDate)
		assert.Equal(t, "2026-09-01", repo.lastFilter.StartDate.Format(domain.DateFormat))
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
		assert.True(t, repo.lastFilter.IncludeInactive)
	})

	t.Run("нулевой businessID", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeNotifier{})

		_, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("некорректный статус в фильтре", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeNotifier{})

		_, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
			BusinessID: 1,
			Status:     ptr.Ptr("pending"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetCustomerAppointments(t *testing.T) {
	t.Run("история клиента", func(t *testing.T) {
		repo := &fakeRepo{list: []*domain.Appointment{scheduledAppointment()}}
		svc := newTestService(repo, &fakeNotifier{})

		resp, err := svc.GetCustomerAppointments(context.Background(), 7)

		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(7), repo.lastCustomerID)
	})

	t.Run("нулевой customerID", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeNotifier{})

		_, err := svc.GetCustomerAppointments(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetCustomerAppointmentsByEmail(t *testing.T) {
	t.Run("поиск по email", func(t *testing.T) {
		repo := &fakeRepo{list: []*domain.Appointment{scheduledAppointment()}}
		customers := &fakeCustomerRepo{customer: &domain.Customer{ID: 7, Email: "ivan@example.com"}}
		svc := newTestServiceWithCustomers(repo, customers, &fakeNotifier{})

		resp, err := svc.GetCustomerAppointmentsByEmail(context.Background(), "ivan@example.com")

		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(7), repo.lastCustomerID)
	})

	t.Run("клиент не найден", func(t *testing.T) {
		customers := &fakeCustomerRepo{err: custRepo.ErrCustomerNotFound}
		svc := newTestServiceWithCustomers(&fakeRepo{}, customers, &fakeNotifier{})

		_, err := svc.GetCustomerAppointmentsByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("пустой email", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeNotifier{})

		_, err := svc.GetCustomerAppointmentsByEmail(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
