// Package sessionview общая HTTP проекция сессии бронирования
// Используется всеми handlers сессий, чтобы ответы были одинаковой формы
package sessionview

import (
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

// SessionResponse HTTP проекция сессии бронирования
type SessionResponse struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Mode   string `json:"mode"`
	UserID int64  `json:"userId"`

	StaffID    *int64  `json:"staffId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds,omitempty"`

	Date      *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"

	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	DateFloor     *string       `json:"dateFloor,omitempty"`
	PendingOffer  *PendingOffer `json:"pendingOffer,omitempty"`
	ReservationID *int64        `json:"reservationId,omitempty"`
	FailureReason string        `json:"failureReason,omitempty"`

	// Разрешенные события из текущего состояния - подсказка для UI
	AllowedEvents []string `json:"allowedEvents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PendingOffer HTTP проекция предложенной акции
type PendingOffer struct {
	OfferID     int64   `json:"offerId"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	OfferPrice  float64 `json:"offerPrice"`
	EndAt       string  `json:"endAt"` // ISO 8601 format
}

// FromSession конвертирует сессию в HTTP проекцию
func FromSession(s *workflow.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:            s.ID,
		State:         string(s.State),
		Mode:          string(s.Mode),
		UserID:        s.UserID,
		StaffID:       s.StaffID,
		ServiceIDs:    s.ServiceIDs,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		CustomerEmail: s.CustomerEmail,
		ReservationID: s.ReservationID,
		FailureReason: s.FailureReason,
		AllowedEvents: allowedEvents(s),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}

	if s.Date != nil {
		dateStr := s.Date.Format(domain.DateFormat)
		resp.Date = &dateStr
	}
	if s.StartTime != nil {
		startStr := s.StartTime.String()
		resp.StartTime = &startStr
	}
	if s.DateFloor != nil {
		floorStr := s.DateFloor.Format(domain.DateFormat)
		resp.DateFloor = &floorStr
	}
	if s.PendingOffer != nil {
		resp.PendingOffer = &PendingOffer{
			OfferID:     s.PendingOffer.OfferID,
			ServiceID:   s.PendingOffer.ServiceID,
			ServiceName: s.PendingOffer.ServiceName,
			OfferPrice:  s.PendingOffer.OfferPrice,
			EndAt:       s.PendingOffer.EndAt.Format(time.RFC3339),
		}
	}

	return resp
}

// allowedEvents перечисляет события, допустимые из текущего состояния
func allowedEvents(s *workflow.Session) []string {
	events := []string{}

	switch s.State {
	case workflow.StateSelectStaff:
		events = append(events, string(workflow.EventSelectStaff))
	case workflow.StateSelectServices:
		events = append(events, string(workflow.EventSelectServices))
	case workflow.StateSelectSlot:
		events = append(events, string(workflow.EventSelectSlot))
	case workflow.StateEnterCustomerInfo:
		events = append(events, string(workflow.EventEnterCustomerInfo), "confirm")
	case workflow.StateOfferPresented:
		events = append(events, "offer_response")
	}

	if s.State.AllowsBack() && backAllowed(s) {
		events = append(events, string(workflow.EventBack))
	}

	return events
}

// backAllowed учитывает режим: для переноса и акции select_slot - точка входа
func backAllowed(s *workflow.Session) bool {
	if s.Mode == workflow.ModeNew {
		return true
	}
	return s.State != workflow.StateSelectSlot && s.State != workflow.StateSelectServices
}
