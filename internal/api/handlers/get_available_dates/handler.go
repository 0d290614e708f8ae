package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	getAvailableDates "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_dates"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidDays       = "некорректное значение параметра days"
	msgNotConfigured     = "расписание бизнеса не настроено"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	BusinessID int64    `json:"businessId"`
	Dates      []string `json:"dates"`
}

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-dates
// Query params: days (optional, горизонт в днях)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-dates - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем горизонт из query параметров (опционально)
	horizonDays := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		horizonDays, err = strconv.Atoi(daysStr)
		if err != nil || horizonDays < 0 {
			h.logger.Warn("GET /businesses/{id}/available-dates - Invalid days param: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		BusinessID:  businessID,
		HorizonDays: horizonDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrBusinessNotConfigured):
			h.logger.Warn("GET /businesses/{id}/available-dates - Business not configured: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-dates - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/available-dates - Failed to get dates: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-dates - Dates retrieved successfully: business_id=%d, dates_count=%d",
		businessID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, &AvailableDatesResponse{
		BusinessID: result.BusinessID,
		Dates:      result.Dates,
	})
}
