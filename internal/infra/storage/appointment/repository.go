package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/dbmetrics"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/psqlbuilder"
)

// Колонки таблицы appointments в порядке сканирования
var selectColumns = []string{
	"id",
	"business_id",
	"service_id",
	"employee_id",
	"customer_id",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"service_price",
	"customer_name",
	"customer_email",
	"customer_phone",
	"confirmation_token",
	"token_expires_at",
	"reminder_sent",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с приемами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приемов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый прием
// Если в контексте передана активная транзакция, использует её.
//
// Двойное бронирование окончательно предотвращает exclusion constraint
// appointments_no_overlap на уровне БД: при конкурентной вставке
// пересекающегося приема возвращается ErrSlotTaken. Проверка доступности
// в use case перед вставкой — быстрый префильтр для UX, не механизм защиты.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"service_id",
			"employee_id",
			"customer_id",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"service_price",
			"customer_name",
			"customer_email",
			"customer_phone",
			"confirmation_token",
			"token_expires_at",
			"reminder_sent",
			"notes",
		).
		Values(
			appt.BusinessID,
			appt.ServiceID,
			appt.EmployeeID,
			appt.CustomerID,
			appt.Date,
			appt.StartTime,
			appt.DurationMinutes,
			appt.Status,
			appt.ServiceName,
			appt.ServicePrice,
			appt.CustomerName,
			appt.CustomerEmail,
			appt.CustomerPhone,
			appt.ConfirmationToken,
			appt.TokenExpiresAt,
			appt.ReminderSent,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConflictError(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// isConflictError проверяет конфликт брони на уровне Postgres
// 23P01 - exclusion_violation, 23505 - unique_violation,
// 40001 - serialization_failure (проигравшая SERIALIZABLE транзакция)
func isConflictError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505" || pqErr.Code == "40001"
	}
	return false
}

// IsSerializationFailure проверяет, что ошибка - serialization_failure (40001).
// SERIALIZABLE транзакция может упасть с этим кодом и на COMMIT, уже вне
// методов репозитория, поэтому проверка нужна и вызывающему коду.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}

// GetByID получает прием по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByConfirmationToken получает прием по токену подтверждения
func (r *Repository) GetByConfirmationToken(ctx context.Context, token string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"confirmation_token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConfirmationToken - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByConfirmationToken")
}

// GetByBusinessWithFilter получает приемы бизнеса с гибкой фильтрацией
// по сотруднику, периоду и статусу. По умолчанию отмененные и no-show
// приемы исключаются — они не занимают слоты.
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	// Фильтрация по сотруднику: приемы без сотрудника общие для бизнеса,
	// поэтому в выборку попадают и они — конфликты считает schedule
	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"employee_id": *filter.EmployeeID},
			squirrel.Eq{"employee_id": nil},
		})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	// Внутри транзакции бронирования блокируем строки дня (FOR UPDATE),
	// чтобы конкурентная запись дождалась завершения проверки доступности
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// Внутри SERIALIZABLE транзакции бронирования чтение с FOR UPDATE
		// тоже может упасть с serialization_failure: слот уже заняли
		if IsSerializationFailure(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows, "GetByBusinessWithFilter")
}

// GetByCustomerID получает историю приемов клиента
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("appointment_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows, "GetByCustomerID")
}

// UpdateStatus обновляет статус приема
// При переходе в confirmed токен подтверждения очищается
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusConfirmed {
		updateBuilder = updateBuilder.
			Set("confirmation_token", nil).
			Set("token_expires_at", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel отменяет прием с указанием причины
// Отмена — смена статуса, физическое удаление приемов не используется
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanOne сканирует одну строку результата в Appointment
func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.ServiceID,
		&appt.EmployeeID,
		&appt.CustomerID,
		&appt.Date,
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.Status,
		&appt.ServiceName,
		&appt.ServicePrice,
		&appt.CustomerName,
		&appt.CustomerEmail,
		&appt.CustomerPhone,
		&appt.ConfirmationToken,
		&appt.TokenExpiresAt,
		&appt.ReminderSent,
		&appt.Notes,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует все строки результата
func (r *Repository) scanAppointments(rows *sql.Rows, op string) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.BusinessID,
			&appt.ServiceID,
			&appt.EmployeeID,
			&appt.CustomerID,
			&appt.Date,
			&appt.StartTime,
			&appt.DurationMinutes,
			&appt.Status,
			&appt.ServiceName,
			&appt.ServicePrice,
			&appt.CustomerName,
			&appt.CustomerEmail,
			&appt.CustomerPhone,
			&appt.ConfirmationToken,
			&appt.TokenExpiresAt,
			&appt.ReminderSent,
			&appt.Notes,
			&appt.CancellationReason,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time
		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}
