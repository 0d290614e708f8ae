package update_business_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/settings/models"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidWorkingHours  = "некорректное расписание рабочих часов"
	msgInvalidBreaks        = "некорректные перерывы"
	msgInvalidBlockedDates  = "некорректные заблокированные даты"
	msgInvalidSlotDuration  = "некорректная длительность слота"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidWorkingHours):
			h.logger.Warn("PUT /businesses/{id}/settings - Invalid working hours: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		case errors.Is(err, settings.ErrInvalidBreaks):
			h.logger.Warn("PUT /businesses/{id}/settings - Invalid breaks: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBreaks)

		case errors.Is(err, settings.ErrInvalidBlockedDates):
			h.logger.Warn("PUT /businesses/{id}/settings - Invalid blocked dates: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBlockedDates)

		case errors.Is(err, settings.ErrInvalidDuration):
			h.logger.Warn("PUT /businesses/{id}/settings - Invalid duration: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/settings - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("PUT /businesses/{id}/settings - Failed to update settings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/settings - Settings updated successfully: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
