package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	checkAvailability "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/check_availability"
	getAvailableTimes "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_times"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTime       = "время обязательно"
	msgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
	msgNotConfigured     = "расписание бизнеса не настроено"
	msgServiceNotFound   = "услуга не найдена"
	msgEmployeeNotFound  = "сотрудник не найден"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BusinessID int64  `json:"businessId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Available  bool   `json:"available"`
}

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/availability
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM),
// serviceId (optional), employeeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var serviceID int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err = strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/availability - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
	}

	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/availability - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	timeStr := r.URL.Query().Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /businesses/{id}/availability - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  startTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrBusinessNotConfigured):
			h.logger.Warn("GET /businesses/{id}/availability - Business not configured: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/availability - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrEmployeeNotFound):
			h.logger.Warn("GET /businesses/{id}/availability - Employee not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput),
			errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/availability - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("GET /businesses/{id}/availability - Failed to check availability: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/availability - Availability checked: business_id=%d, date=%s, time=%s, available=%t",
		businessID, dateStr, timeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		BusinessID: businessID,
		Date:       dateStr,
		Time:       timeStr,
		Available:  result.Available,
	})
}
