package chat_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/chatsession"
)

const (
	msgMissingSessionID   = "ID сессии обязателен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStep        = "некорректный шаг диалога"
	msgSessionNotFound    = "сессия не найдена или истекла"
)

var validSteps = map[chatsession.Step]bool{
	chatsession.StepService:  true,
	chatsession.StepDate:     true,
	chatsession.StepTime:     true,
	chatsession.StepContacts: true,
	chatsession.StepConfirm:  true,
}

// PutSessionRequest HTTP request model
type PutSessionRequest struct {
	Step  chatsession.Step  `json:"step"`
	Draft chatsession.Draft `json:"draft"`
}

type Handler struct {
	store  SessionStore
	logger Logger
}

func NewHandler(store SessionStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// HandleGet GET /api/v1/chat/sessions/{sessionId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	state, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatsession.ErrSessionNotFound) {
			h.logger.Warn("GET /chat/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("GET /chat/sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// HandlePut PUT /api/v1/chat/sessions/{sessionId}
// Полностью заменяет состояние сессии и продлевает её TTL
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	var req PutSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /chat/sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !validSteps[req.Step] {
		h.logger.Warn("PUT /chat/sessions/{id} - Invalid step: session_id=%s, step=%s", sessionID, req.Step)
		handlers.RespondBadRequest(w, msgInvalidStep)
		return
	}

	state := &chatsession.State{
		SessionID: sessionID,
		Step:      req.Step,
		Draft:     req.Draft,
	}

	if err := h.store.Put(r.Context(), state); err != nil {
		h.logger.Error("PUT /chat/sessions/{id} - Failed to save session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /chat/sessions/{id} - Session saved: session_id=%s, step=%s", sessionID, req.Step)
	handlers.RespondJSON(w, http.StatusOK, state)
}

// HandleDelete DELETE /api/v1/chat/sessions/{sessionId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	if err := h.store.Delete(r.Context(), sessionID); err != nil {
		h.logger.Error("DELETE /chat/sessions/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /chat/sessions/{id} - Session deleted: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
