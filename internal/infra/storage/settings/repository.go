package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/dbmetrics"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/psqlbuilder"
)

// Repository репозиторий настроек доступности бизнеса
// Рабочие часы, перерывы и заблокированные даты хранятся в JSONB колонках
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает настройки бизнеса
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"working_hours",
		"breaks",
		"blocked_dates",
		"appointment_duration_minutes",
		"created_at",
		"updated_at",
	).
		From("business_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings             domain.BusinessSettings
		workingHoursRaw      []byte
		breaksRaw            []byte
		blockedDatesRaw      []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.BusinessID,
		&workingHoursRaw,
		&breaksRaw,
		&blockedDatesRaw,
		&settings.AppointmentDurationMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(workingHoursRaw, &settings.WorkingHours); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - decode working_hours: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(breaksRaw, &settings.Breaks); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - decode breaks: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(blockedDatesRaw, &settings.BlockedDates); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - decode blocked_dates: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Create создает настройки бизнеса (одна запись на бизнес)
func (r *Repository) Create(ctx context.Context, settings *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingHoursRaw, breaksRaw, blockedDatesRaw, err := encodeJSONFields(settings)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("business_settings").
		Columns(
			"business_id",
			"working_hours",
			"breaks",
			"blocked_dates",
			"appointment_duration_minutes",
		).
		Values(
			settings.BusinessID,
			workingHoursRaw,
			breaksRaw,
			blockedDatesRaw,
			settings.AppointmentDurationMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

// Update обновляет настройки бизнеса
func (r *Repository) Update(ctx context.Context, settings *domain.BusinessSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingHoursRaw, breaksRaw, blockedDatesRaw, err := encodeJSONFields(settings)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("business_settings").
		Set("working_hours", workingHoursRaw).
		Set("breaks", breaksRaw).
		Set("blocked_dates", blockedDatesRaw).
		Set("appointment_duration_minutes", settings.AppointmentDurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": settings.BusinessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

func encodeJSONFields(settings *domain.BusinessSettings) ([]byte, []byte, []byte, error) {
	workingHoursRaw, err := json.Marshal(settings.WorkingHours)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: working_hours: %v", ErrEncode, err)
	}

	breaks := settings.Breaks
	if breaks == nil {
		breaks = []domain.BreakWindow{}
	}
	breaksRaw, err := json.Marshal(breaks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: breaks: %v", ErrEncode, err)
	}

	blockedDates := settings.BlockedDates
	if blockedDates == nil {
		blockedDates = []string{}
	}
	blockedDatesRaw, err := json.Marshal(blockedDates)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: blocked_dates: %v", ErrEncode, err)
	}

	return workingHoursRaw, breaksRaw, blockedDatesRaw, nil
}
