package get_available_times

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	getAvailableTimes "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_times"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotConfigured     = "расписание бизнеса не настроено"
	msgServiceNotFound   = "услуга не найдена"
	msgEmployeeNotFound  = "сотрудник не найден"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-times
// Query params: date (required, YYYY-MM-DD), serviceId (optional),
// employeeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-times - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// serviceId опционален: без него используется длительность слота по умолчанию
	var serviceID int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err = strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-times - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
	}

	// employeeId опционален: без него считается доступность всего бизнеса
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-times - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/available-times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, serviceID, employeeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-times - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrBusinessNotConfigured):
			h.logger.Warn("GET /businesses/{id}/available-times - Business not configured: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/available-times - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrEmployeeNotFound):
			h.logger.Warn("GET /businesses/{id}/available-times - Employee not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-times - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/available-times - Failed to get times: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-times - Times retrieved successfully: business_id=%d, date=%s, times_count=%d",
		businessID, dateStr, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
