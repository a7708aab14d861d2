package confirm_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bookline/BL-BookingEngine/internal/api/handlers"
	"github.com/bookline/BL-BookingEngine/internal/api/handlers/sessionview"
	"github.com/bookline/BL-BookingEngine/internal/api/middleware"
	"github.com/bookline/BL-BookingEngine/internal/usecase/commit_reservation"
	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

const (
	msgSessionNotFound  = "сессия не найдена или истекла"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgNotReady         = "сессия не готова к подтверждению"
	msgAlreadyCommitted = "фиксация уже выполняется"
	msgSlotTaken        = "выбранный временной слот уже занят"
	msgTooLateToBook    = "слишком поздно для бронирования этого слота"
	msgInvalidSlot      = "некорректный временной слот"
	msgStaffUnavailable = "сотрудник не работает в выбранную дату"
	msgOfferNotValid    = "акция недействительна"
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

// Handle POST /api/v1/booking-sessions/{sessionId}/confirm
// Ошибка фиксации возвращает сессию в теле ответа вместе со статусом ошибки:
// UI показывает причину и предлагает выбрать другой слот
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-sessions/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.manager.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, workflow.ErrSessionNotFound) {
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("POST /booking-sessions/{id}/confirm - Failed to get session: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
		return
	}
	if session.UserID != userID {
		h.logger.Warn("POST /booking-sessions/{id}/confirm - Access denied: session_id=%s, user_id=%d",
			sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.manager.Confirm(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNotReadyToCommit):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Not ready: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgNotReady)

		case errors.Is(err, workflow.ErrInvalidTransition):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Already committing: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadyCommitted)

		case errors.Is(err, commit_reservation.ErrSlotTaken):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Slot taken: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, commit_reservation.ErrTooLateToBook):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Too late to book: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, commit_reservation.ErrInvalidSlot):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Invalid slot: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, commit_reservation.ErrStaffUnavailable):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Staff unavailable: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgStaffUnavailable)

		case errors.Is(err, commit_reservation.ErrOfferNotValid):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Offer not valid: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgOfferNotValid)

		default:
			h.logger.Error("POST /booking-sessions/{id}/confirm - Failed to commit: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/confirm - Session committed successfully: session_id=%s, state=%s",
		sessionID, result.State)
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSession(result))
}
