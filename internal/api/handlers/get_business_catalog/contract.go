package get_business_catalog

import (
	"context"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
)

type CatalogRepository interface {
	ListServicesByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error)
	ListEmployeesByBusiness(ctx context.Context, businessID int64) ([]*domain.Employee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
