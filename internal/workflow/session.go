package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// Event пользовательское событие, продвигающее сессию вперед или назад
type Event struct {
	Type EventType `json:"type"`

	StaffID    *int64  `json:"staffId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds,omitempty"`

	Date      *time.Time        `json:"date,omitempty"`
	StartTime *types.TimeString `json:"startTime,omitempty"`

	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
}

// PendingOffer акция, ожидающая ответа клиента в состоянии offer_presented
type PendingOffer struct {
	OfferID     int64     `json:"offerId"`
	ServiceID   int64     `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	OfferPrice  float64   `json:"offerPrice"`
	EndAt       time.Time `json:"endAt"`
}

// Session сессия бронирования: состояние конечного автомата и накопленный выбор
// Сериализуется в JSON и живет в Redis до истечения TTL
type Session struct {
	ID     string `json:"id"`
	UserID int64  `json:"userId"`
	State  State  `json:"state"`
	Mode   Mode   `json:"mode"`

	StaffID    *int64  `json:"staffId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds,omitempty"`

	Date      *time.Time        `json:"date,omitempty"`
	StartTime *types.TimeString `json:"startTime,omitempty"`

	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	// ID исходного бронирования при переносе
	RescheduleOf *int64 `json:"rescheduleOf,omitempty"`

	// Акция, по которой идет бронирование (режим offer)
	OfferID *int64 `json:"offerId,omitempty"`

	// Нижняя граница даты слота для бронирования по акции
	DateFloor *time.Time `json:"dateFloor,omitempty"`

	// Акция, ожидающая ответа после успешной фиксации
	PendingOffer *PendingOffer `json:"pendingOffer,omitempty"`

	// Результат фиксации
	ReservationID *int64 `json:"reservationId,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Apply применяет событие к сессии
// Переходы охраняемые: событие вне своего состояния отклоняется
func (s *Session) Apply(event Event, now time.Time) error {
	switch event.Type {
	case EventSelectStaff:
		return s.applySelectStaff(event, now)
	case EventSelectServices:
		return s.applySelectServices(event, now)
	case EventSelectSlot:
		return s.applySelectSlot(event, now)
	case EventEnterCustomerInfo:
		return s.applyEnterCustomerInfo(event, now)
	case EventBack:
		return s.applyBack(now)
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, event.Type)
	}
}

func (s *Session) applySelectStaff(event Event, now time.Time) error {
	if s.State != StateSelectStaff {
		return fmt.Errorf("%w: select_staff is not allowed in state %q", ErrInvalidTransition, s.State)
	}
	if event.StaffID == nil || *event.StaffID <= 0 {
		return fmt.Errorf("%w: staffId is required", ErrInvalidEvent)
	}

	s.StaffID = event.StaffID
	// Смена сотрудника сбрасывает весь выбор ниже по шагам
	s.ServiceIDs = nil
	s.clearSlot()
	s.State = StateSelectServices
	s.UpdatedAt = now
	return nil
}

func (s *Session) applySelectServices(event Event, now time.Time) error {
	if s.State != StateSelectServices {
		return fmt.Errorf("%w: select_services is not allowed in state %q", ErrInvalidTransition, s.State)
	}
	if len(event.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceId is required", ErrInvalidEvent)
	}
	for _, id := range event.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidEvent)
		}
	}

	s.ServiceIDs = event.ServiceIDs
	s.clearSlot()
	s.State = StateSelectSlot
	s.UpdatedAt = now
	return nil
}

func (s *Session) applySelectSlot(event Event, now time.Time) error {
	if s.State != StateSelectSlot {
		return fmt.Errorf("%w: select_slot is not allowed in state %q", ErrInvalidTransition, s.State)
	}
	if event.Date == nil || event.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}
	if event.StartTime == nil {
		return fmt.Errorf("%w: startTime is required", ErrInvalidEvent)
	}
	if err := event.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidEvent, err)
	}
	if s.DateFloor != nil && event.Date.Before(*s.DateFloor) {
		return ErrDateBelowFloor
	}

	s.Date = event.Date
	s.StartTime = event.StartTime
	s.State = StateEnterCustomerInfo
	s.UpdatedAt = now
	return nil
}

func (s *Session) applyEnterCustomerInfo(event Event, now time.Time) error {
	if s.State != StateEnterCustomerInfo {
		return fmt.Errorf("%w: enter_customer_info is not allowed in state %q", ErrInvalidTransition, s.State)
	}
	if event.CustomerName == nil || strings.TrimSpace(*event.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidEvent)
	}
	if event.CustomerPhone == nil || strings.TrimSpace(*event.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidEvent)
	}

	s.CustomerName = *event.CustomerName
	s.CustomerPhone = *event.CustomerPhone
	if event.CustomerEmail != nil {
		s.CustomerEmail = *event.CustomerEmail
	}
	// Остаемся в enter_customer_info: переход в committing делает только confirm
	s.UpdatedAt = now
	return nil
}

// applyBack шаг назад; из failure возвращает в select_slot для повторной попытки
func (s *Session) applyBack(now time.Time) error {
	if !s.State.AllowsBack() {
		return fmt.Errorf("%w: back is not allowed in state %q", ErrInvalidTransition, s.State)
	}

	switch s.State {
	case StateSelectServices:
		if s.Mode != ModeNew {
			return fmt.Errorf("%w: back is not allowed in state %q", ErrInvalidTransition, s.State)
		}
		s.State = StateSelectStaff
	case StateSelectSlot:
		// Для переноса и акции select_slot - точка входа, назад некуда
		if s.Mode != ModeNew {
			return fmt.Errorf("%w: back is not allowed in state %q", ErrInvalidTransition, s.State)
		}
		s.State = StateSelectServices
	case StateEnterCustomerInfo:
		s.State = StateSelectSlot
	case StateFailure:
		s.FailureReason = ""
		s.State = StateSelectSlot
	}

	s.UpdatedAt = now
	return nil
}

// ReadyToCommit проверяет, что сессия заполнена для фиксации
func (s *Session) ReadyToCommit() bool {
	return s.State == StateEnterCustomerInfo &&
		s.StaffID != nil &&
		len(s.ServiceIDs) > 0 &&
		s.Date != nil &&
		s.StartTime != nil &&
		strings.TrimSpace(s.CustomerName) != "" &&
		strings.TrimSpace(s.CustomerPhone) != ""
}

func (s *Session) clearSlot() {
	s.Date = nil
	s.StartTime = nil
}
