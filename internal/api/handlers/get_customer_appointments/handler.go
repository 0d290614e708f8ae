package get_customer_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/appointments"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgEmailRequired     = "параметр email обязателен"
	msgCustomerNotFound  = "клиент не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/appointments
// Возвращает историю записей клиента, включая отмененные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/appointments - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	result, err := h.service.GetCustomerAppointments(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/appointments - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)

		default:
			h.logger.Error("GET /customers/{id}/appointments - Failed to get appointments: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/appointments - Appointments retrieved successfully: customer_id=%d, count=%d",
		customerID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByEmail GET /api/v1/customers/appointments?email=...
// Ищет клиента по email и возвращает его историю записей
func (h *Handler) HandleByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /customers/appointments - Missing email query param")
		handlers.RespondBadRequest(w, msgEmailRequired)
		return
	}

	result, err := h.service.GetCustomerAppointmentsByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/appointments - Customer not found: email=%s", email)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /customers/appointments - Invalid input: email=%s, error=%v", email, err)
			handlers.RespondBadRequest(w, msgEmailRequired)

		default:
			h.logger.Error("GET /customers/appointments - Failed to get appointments: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/appointments - Appointments retrieved successfully: email=%s, count=%d",
		email, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
