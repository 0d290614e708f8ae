package get_customer_appointments

import (
	"context"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/appointments/models"
)

type AppointmentService interface {
	GetCustomerAppointments(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error)
	GetCustomerAppointmentsByEmail(ctx context.Context, email string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
