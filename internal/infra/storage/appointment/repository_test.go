package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/ptr"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func appointmentRows(appt *domain.Appointment) *sqlmock.Rows {
	return sqlmock.NewRows(selectColumns).AddRow(
		appt.ID,
		appt.BusinessID,
		appt.ServiceID,
		appt.EmployeeID,
		appt.CustomerID,
		appt.Date,
		string(appt.StartTime),
		appt.DurationMinutes,
		string(appt.Status),
		appt.ServiceName,
		appt.ServicePrice,
		appt.CustomerName,
		appt.CustomerEmail,
		appt.CustomerPhone,
		appt.ConfirmationToken,
		appt.TokenExpiresAt,
		appt.ReminderSent,
		appt.Notes,
		appt.CancellationReason,
		appt.CancelledAt,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
}

func sampleAppointment() *domain.Appointment {
	token := "11111111-2222-3333-4444-555555555555"
	expires := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
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
		ServicePrice:      1500,
		CustomerName:      "Иван Петров",
		CustomerEmail:     "ivan@example.com",
		CustomerPhone:     "+79990001122",
		ConfirmationToken: &token,
		TokenExpiresAt:    &expires,
		CreatedAt:         time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	t.Run("успешная вставка", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("INSERT INTO appointments").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)))

		appt := sampleAppointment()
		appt.ID = 0

		created, err := repo.Create(context.Background(), appt)

		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("нарушение exclusion constraint", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("INSERT INTO appointments").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "appointments_no_overlap"})

		_, err := repo.Create(context.Background(), sampleAppointment())

		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("нарушение unique constraint", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("INSERT INTO appointments").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), sampleAppointment())

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("serialization failure тоже считается конфликтом", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("INSERT INTO appointments").
			WillReturnError(&pq.Error{Code: "40001"})

		_, err := repo.Create(context.Background(), sampleAppointment())

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("прочие ошибки БД не маскируются под конфликт", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("INSERT INTO appointments").
			WillReturnError(&pq.Error{Code: "42P01"})

		_, err := repo.Create(context.Background(), sampleAppointment())

		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NotErrorIs(t, err, ErrSlotTaken)
	})
}

func TestIsSerializationFailure(t *testing.T) {
	// Ошибка коммита приходит обернутой из transaction manager
	wrapped := fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})

	assert.True(t, IsSerializationFailure(wrapped))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23P01"}))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
	assert.False(t, IsSerializationFailure(nil))
}

func TestGetByID(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		expected := sampleAppointment()
		mock.ExpectQuery("SELECT .+ FROM appointments WHERE id = ").
			WithArgs(int64(11)).
			WillReturnRows(appointmentRows(expected))

		appt, err := repo.GetByID(context.Background(), 11)

		require.NoError(t, err)
		assert.Equal(t, expected.ID, appt.ID)
		assert.Equal(t, expected.StartTime, appt.StartTime)
		assert.Equal(t, expected.Status, appt.Status)
		require.NotNil(t, appt.ConfirmationToken)
		assert.Equal(t, *expected.ConfirmationToken, *appt.ConfirmationToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("не найдено", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("SELECT .+ FROM appointments WHERE id = ").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 99)

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestGetByConfirmationToken(t *testing.T) {
	repo, mock := newMockRepository(t)

	expected := sampleAppointment()
	mock.ExpectQuery("SELECT .+ FROM appointments WHERE confirmation_token = ").
		WithArgs(*expected.ConfirmationToken).
		WillReturnRows(appointmentRows(expected))

	appt, err := repo.GetByConfirmationToken(context.Background(), *expected.ConfirmationToken)

	require.NoError(t, err)
	assert.Equal(t, expected.ID, appt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBusinessWithFilter(t *testing.T) {
	t.Run("по умолчанию отмененные исключаются", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("SELECT .+ FROM appointments WHERE business_id = .+ AND status NOT IN ").
			WithArgs(int64(1), "cancelled", "no_show").
			WillReturnRows(appointmentRows(sampleAppointment()))

		appointments, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessAppointmentsFilter{
			BusinessID: 1,
		})

		require.NoError(t, err)
		assert.Len(t, appointments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("фильтр по сотруднику включает общие приемы", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT .+ FROM appointments WHERE business_id = .+ AND \(employee_id = .+ OR employee_id IS NULL\)`).
			WithArgs(int64(1), int64(3), "cancelled", "no_show").
			WillReturnRows(sqlmock.NewRows(selectColumns))

		appointments, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessAppointmentsFilter{
			BusinessID: 1,
			EmployeeID: ptr.Ptr(int64(3)),
		})

		require.NoError(t, err)
		assert.Empty(t, appointments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("один день сортируется по времени начала", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT .+ FROM appointments WHERE .+ ORDER BY start_time ASC").
			WithArgs(int64(1), date, date, "cancelled", "no_show").
			WillReturnRows(sqlmock.NewRows(selectColumns))

		_, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessAppointmentsFilter{
			BusinessID: 1,
			StartDate:  &date,
			EndDate:    &date,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("serialization failure при чтении мапится в конфликт", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("SELECT .+ FROM appointments WHERE business_id = ").
			WillReturnError(&pq.Error{Code: "40001"})

		_, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessAppointmentsFilter{
			BusinessID: 1,
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("явный статус отключает исключение неактивных", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		status := domain.StatusCancelled
		mock.ExpectQuery("SELECT .+ FROM appointments WHERE business_id = .+ AND status = ").
			WithArgs(int64(1), string(status)).
			WillReturnRows(sqlmock.NewRows(selectColumns))

		_, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessAppointmentsFilter{
			BusinessID: 1,
			Status:     &status,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("подтверждение очищает токен", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("UPDATE appointments SET status = .+ confirmation_token = .+ token_expires_at = ").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 11, domain.StatusConfirmed)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("обычная смена статуса не трогает токен", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("UPDATE appointments SET status = ").
			WithArgs(string(domain.StatusCompleted), int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 11, domain.StatusCompleted)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("UPDATE appointments SET status = ").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 99, domain.StatusConfirmed)

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("UPDATE appointments SET status = .+ cancellation_reason = .+ cancelled_at = NOW").
			WithArgs(string(domain.StatusCancelled), "клиент отменил", int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Cancel(context.Background(), 11, "клиент отменил")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("UPDATE appointments SET ").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(context.Background(), 99, "")

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
