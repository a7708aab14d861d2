package advance_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bookline/BL-BookingEngine/internal/api/handlers"
	"github.com/bookline/BL-BookingEngine/internal/api/handlers/sessionview"
	"github.com/bookline/BL-BookingEngine/internal/api/middleware"
	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход недопустим из текущего состояния"
	msgInvalidEvent       = "некорректные данные события"
	msgDateBelowFloor     = "дата не может быть раньше даты исходного бронирования"
)

type Handler struct {
	manager WorkflowManager
	logger  Logger
}

func NewHandler(manager WorkflowManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions/{sessionId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-sessions/{id}/events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var event workflow.Event
	if err := handlers.DecodeJSON(r, &event); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Проверяем владельца до применения события
	session, err := h.manager.Get(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, sessionID, err)
		return
	}
	if session.UserID != userID {
		h.logger.Warn("POST /booking-sessions/{id}/events - Access denied: session_id=%s, user_id=%d",
			sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	updated, err := h.manager.Apply(r.Context(), sessionID, event)
	if err != nil {
		h.respondError(w, sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/events - Event applied successfully: session_id=%s, event=%s, state=%s",
		sessionID, event.Type, updated.State)
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSession(updated))
}

func (h *Handler) respondError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, workflow.ErrSessionNotFound):
		h.logger.Warn("POST /booking-sessions/{id}/events - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, workflow.ErrDateBelowFloor):
		h.logger.Warn("POST /booking-sessions/{id}/events - Date below floor: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgDateBelowFloor)

	case errors.Is(err, workflow.ErrInvalidTransition):
		h.logger.Warn("POST /booking-sessions/{id}/events - Invalid transition: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, workflow.ErrInvalidEvent):
		h.logger.Warn("POST /booking-sessions/{id}/events - Invalid event: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidEvent)

	default:
		h.logger.Error("POST /booking-sessions/{id}/events - Failed to apply event: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
	}
}
