package appointments

import (
	"context"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
)

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByConfirmationToken(ctx context.Context, token string) (*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// Notifier интерфейс для асинхронной отправки уведомлений
type Notifier interface {
	DispatchCancellation(appt *domain.Appointment)
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
