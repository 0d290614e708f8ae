package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingToken       = "токен подтверждения обязателен"
	msgTokenNotFound      = "токен подтверждения не найден"
	msgTokenExpired       = "токен подтверждения истек"
	msgAlreadyConfirmed   = "запись уже подтверждена"
	msgCannotConfirm      = "запись не может быть подтверждена"
)

// ConfirmAppointmentRequest HTTP request model
type ConfirmAppointmentRequest struct {
	Token string `json:"token"`
}

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

// Handle POST /api/v1/appointments/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/confirm - Missing token")
			handlers.RespondBadRequest(w, msgMissingToken)

		case errors.Is(err, appointments.ErrTokenNotFound):
			h.logger.Warn("POST /appointments/confirm - Token not found")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, appointments.ErrTokenExpired):
			h.logger.Warn("POST /appointments/confirm - Token expired")
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, appointments.ErrAlreadyConfirmed):
			h.logger.Warn("POST /appointments/confirm - Already confirmed")
			handlers.RespondError(w, http.StatusConflict, msgAlreadyConfirmed)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/confirm - Cannot confirm: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgCannotConfirm)

		default:
			h.logger.Error("POST /appointments/confirm - Failed to confirm appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/confirm - Appointment confirmed successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
