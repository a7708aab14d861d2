package get_session

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
	msgSessionNotFound = "сессия не найдена или истекла"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/booking-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.manager.Get(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrSessionNotFound):
			h.logger.Warn("GET /booking-sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /booking-sessions/{id} - Failed to get session: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Сессия принадлежит создавшему её пользователю
	if session.UserID != userID {
		h.logger.Warn("GET /booking-sessions/{id} - Access denied: session_id=%s, user_id=%d", sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.logger.Info("GET /booking-sessions/{id} - Session retrieved successfully: session_id=%s, state=%s",
		sessionID, session.State)
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSession(session))
}
