package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/dbmetrics"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/psqlbuilder"
)

// Repository репозиторий каталога бизнеса: услуги и сотрудники
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу бизнеса по ID
func (r *Repository) GetServiceByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"price",
		"description",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.BusinessID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.Description,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// ListServicesByBusiness получает все услуги бизнеса
func (r *Repository) ListServicesByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"price",
		"description",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&svc.ID,
			&svc.BusinessID,
			&svc.Name,
			&svc.DurationMinutes,
			&svc.Price,
			&svc.Description,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServicesByBusiness - scan service: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServicesByBusiness - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetEmployeeByID получает сотрудника бизнеса по ID
func (r *Repository) GetEmployeeByID(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"role",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(squirrel.Eq{"id": employeeID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployeeByID - build select query: %v", ErrBuildQuery, err)
	}

	var emp domain.Employee
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&emp.ID,
		&emp.BusinessID,
		&emp.Name,
		&emp.Role,
		&emp.Email,
		&emp.Phone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployeeByID - scan employee: %v", ErrScanRow, err)
	}

	emp.CreatedAt = createdAt.Time
	emp.UpdatedAt = updatedAt.Time

	return &emp, nil
}

// ListEmployeesByBusiness получает всех сотрудников бизнеса
func (r *Repository) ListEmployeesByBusiness(ctx context.Context, businessID int64) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"role",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeesByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeesByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var emp domain.Employee
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&emp.ID,
			&emp.BusinessID,
			&emp.Name,
			&emp.Role,
			&emp.Email,
			&emp.Phone,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEmployeesByBusiness - scan employee: %v", ErrScanRow, err)
		}

		emp.CreatedAt = createdAt.Time
		emp.UpdatedAt = updatedAt.Time
		employees = append(employees, &emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEmployeesByBusiness - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}
