package start_session

import (
	"errors"
	"net/http"

	"github.com/bookline/BL-BookingEngine/internal/api/handlers"
	"github.com/bookline/BL-BookingEngine/internal/api/handlers/sessionview"
	"github.com/bookline/BL-BookingEngine/internal/api/middleware"
	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

const (
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgMissingUserID           = "отсутствует ID пользователя"
	msgReservationNotFound     = "бронирование не найдено"
	msgCannotReschedule        = "бронирование не может быть перенесено"
	msgInvalidReservationParam = "некорректный ID переносимого бронирования"
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

// Handle POST /api/v1/booking-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: пустое тело - обычная сессия
	var req StartSessionRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /booking-sessions - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	var (
		session *workflow.Session
		err     error
	)

	if req.RescheduleOf != nil {
		if *req.RescheduleOf <= 0 {
			h.logger.Warn("POST /booking-sessions - Invalid rescheduleOf: %d", *req.RescheduleOf)
			handlers.RespondBadRequest(w, msgInvalidReservationParam)
			return
		}
		session, err = h.manager.StartReschedule(r.Context(), userID, *req.RescheduleOf)
	} else {
		session, err = h.manager.Start(r.Context(), userID)
	}

	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrReservationNotFound):
			h.logger.Warn("POST /booking-sessions - Reservation not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, workflow.ErrCannotReschedule):
			h.logger.Warn("POST /booking-sessions - Cannot reschedule: user_id=%d", userID)
			handlers.RespondConflict(w, msgCannotReschedule)

		default:
			h.logger.Error("POST /booking-sessions - Failed to start session: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions - Session started successfully: session_id=%s, user_id=%d, mode=%s",
		session.ID, userID, session.Mode)
	handlers.RespondJSON(w, http.StatusCreated, sessionview.FromSession(session))
}
