package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/dbmetrics"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/psqlbuilder"
)

// Repository репозиторий клиентов
// Клиент идентифицируется по email: сначала поиск, при отсутствии — создание
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByEmail ищет клиента по email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var cust domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cust.ID,
		&cust.Name,
		&cust.Email,
		&cust.Phone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByEmail - scan customer: %v", ErrScanRow, err)
	}

	cust.CreatedAt = createdAt.Time
	cust.UpdatedAt = updatedAt.Time

	return &cust, nil
}

// Create создает нового клиента
// ON CONFLICT по email защищает от гонки двух конкурентных бронирований
// одного клиента: оба получат одну и ту же строку
func (r *Repository) Create(ctx context.Context, cust *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email", "phone").
		Values(cust.Name, cust.Email, cust.Phone).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone, updated_at = NOW()").
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cust.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cust.CreatedAt = createdAt.Time
	cust.UpdatedAt = updatedAt.Time

	return cust, nil
}
