package get_staff_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookline/BL-BookingEngine/internal/api/handlers"
	"github.com/bookline/BL-BookingEngine/internal/service/reservations"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidFilter  = "некорректные параметры фильтрации"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, includeInactive
// Используется экранами подтверждения за API-шлюзом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]

	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/reservations - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req, err := ToServiceRequest(staffID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /staff/{id}/reservations - Invalid filter: staff_id=%d, error=%v", staffID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetStaffReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/reservations - Invalid filter: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /staff/{id}/reservations - Failed to get reservations: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/reservations - Reservations retrieved successfully: staff_id=%d, count=%d",
		staffID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
