package offer_response

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
	msgNoOfferPending     = "нет акции, ожидающей ответа"
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

// Handle POST /api/v1/booking-sessions/{sessionId}/offer-response
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-sessions/{id}/offer-response - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req OfferResponseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/offer-response - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.manager.Get(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, sessionID, err)
		return
	}
	if session.UserID != userID {
		h.logger.Warn("POST /booking-sessions/{id}/offer-response - Access denied: session_id=%s, user_id=%d",
			sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	updated, err := h.manager.RespondToOffer(r.Context(), sessionID, req.Accept)
	if err != nil {
		h.respondError(w, sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/offer-response - Offer response applied: session_id=%s, accept=%t, state=%s",
		sessionID, req.Accept, updated.State)
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSession(updated))
}

func (h *Handler) respondError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, workflow.ErrSessionNotFound):
		h.logger.Warn("POST /booking-sessions/{id}/offer-response - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, workflow.ErrNoOfferPending):
		h.logger.Warn("POST /booking-sessions/{id}/offer-response - No offer pending: session_id=%s", sessionID)
		handlers.RespondConflict(w, msgNoOfferPending)

	default:
		h.logger.Error("POST /booking-sessions/{id}/offer-response - Failed to respond to offer: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
	}
}
