package create_appointment

import (
	"context"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
)

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
}

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// CatalogRepository интерфейс репозитория услуг и сотрудников
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetEmployeeByID(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error)
}

// CustomerRepository интерфейс репозитория клиентов.
// Create выполняет upsert по email, отдельный поиск клиента здесь не нужен
type CustomerRepository interface {
	Create(ctx context.Context, cust *domain.Customer) (*domain.Customer, error)
}

// Notifier интерфейс для асинхронной отправки уведомлений после коммита
type Notifier interface {
	DispatchConfirmation(appt *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
