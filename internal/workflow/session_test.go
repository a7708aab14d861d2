package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/BL-BookingEngine/pkg/ptr"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newSession(state State, mode Mode) *Session {
	return &Session{
		ID:        "test-session",
		UserID:    42,
		State:     state,
		Mode:      mode,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func slotEvent(date time.Time, start string) Event {
	return Event{
		Type:      EventSelectSlot,
		Date:      &date,
		StartTime: ptr.Ptr(types.TimeString(start)),
	}
}

func TestApply_HappyPath(t *testing.T) {
	s := newSession(StateSelectStaff, ModeNew)

	require.NoError(t, s.Apply(Event{Type: EventSelectStaff, StaffID: ptr.Ptr(int64(1))}, testNow))
	assert.Equal(t, StateSelectServices, s.State)

	require.NoError(t, s.Apply(Event{Type: EventSelectServices, ServiceIDs: []int64{5, 6}}, testNow))
	assert.Equal(t, StateSelectSlot, s.State)

	require.NoError(t, s.Apply(slotEvent(testNow.AddDate(0, 0, 1), "10:00"), testNow))
	assert.Equal(t, StateEnterCustomerInfo, s.State)

	require.NoError(t, s.Apply(Event{
		Type:          EventEnterCustomerInfo,
		CustomerName:  ptr.Ptr("Иван Петров"),
		CustomerPhone: ptr.Ptr("+79991234567"),
	}, testNow))
	assert.Equal(t, StateEnterCustomerInfo, s.State)
	assert.True(t, s.ReadyToCommit())
}

func TestApply_EventOutOfOrder(t *testing.T) {
	s := newSession(StateSelectStaff, ModeNew)

	// Нельзя выбрать слот, не выбрав сотрудника и услуги
	err := s.Apply(slotEvent(testNow, "10:00"), testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Нельзя ввести контакты без слота
	err = s.Apply(Event{
		Type:          EventEnterCustomerInfo,
		CustomerName:  ptr.Ptr("Иван"),
		CustomerPhone: ptr.Ptr("+7999"),
	}, testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_SelectStaffResetsDownstream(t *testing.T) {
	s := newSession(StateSelectStaff, ModeNew)
	require.NoError(t, s.Apply(Event{Type: EventSelectStaff, StaffID: ptr.Ptr(int64(1))}, testNow))
	require.NoError(t, s.Apply(Event{Type: EventSelectServices, ServiceIDs: []int64{5}}, testNow))
	require.NoError(t, s.Apply(slotEvent(testNow.AddDate(0, 0, 1), "10:00"), testNow))

	// Возвращаемся к выбору сотрудника и выбираем другого
	require.NoError(t, s.Apply(Event{Type: EventBack}, testNow))
	require.NoError(t, s.Apply(Event{Type: EventBack}, testNow))
	require.NoError(t, s.Apply(Event{Type: EventBack}, testNow))
	assert.Equal(t, StateSelectStaff, s.State)

	require.NoError(t, s.Apply(Event{Type: EventSelectStaff, StaffID: ptr.Ptr(int64(2))}, testNow))
	assert.Nil(t, s.ServiceIDs)
	assert.Nil(t, s.Date)
	assert.Nil(t, s.StartTime)
}

func TestApply_BackFromEntryPointRejected(t *testing.T) {
	// Для переноса select_slot - точка входа
	s := newSession(StateSelectSlot, ModeReschedule)
	s.StaffID = ptr.Ptr(int64(1))
	s.ServiceIDs = []int64{5}

	err := s.Apply(Event{Type: EventBack}, testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_BackFromFailureRetries(t *testing.T) {
	s := newSession(StateFailure, ModeNew)
	s.FailureReason = "slot_taken"

	require.NoError(t, s.Apply(Event{Type: EventBack}, testNow))
	assert.Equal(t, StateSelectSlot, s.State)
	assert.Empty(t, s.FailureReason)
}

func TestApply_DateFloorEnforced(t *testing.T) {
	floor := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	s := newSession(StateSelectSlot, ModeOffer)
	s.StaffID = ptr.Ptr(int64(1))
	s.ServiceIDs = []int64{5}
	s.DateFloor = &floor

	err := s.Apply(slotEvent(floor.AddDate(0, 0, -1), "10:00"), testNow)
	assert.ErrorIs(t, err, ErrDateBelowFloor)

	// Дата, равная границе, допустима
	assert.NoError(t, s.Apply(slotEvent(floor, "10:00"), testNow))
}

func TestApply_InvalidPayload(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{"no staff id", StateSelectStaff, Event{Type: EventSelectStaff}},
		{"negative staff id", StateSelectStaff, Event{Type: EventSelectStaff, StaffID: ptr.Ptr(int64(-1))}},
		{"no services", StateSelectServices, Event{Type: EventSelectServices}},
		{"no date", StateSelectSlot, Event{Type: EventSelectSlot, StartTime: ptr.Ptr(types.TimeString("10:00"))}},
		{"bad time", StateSelectSlot, slotEvent(testNow, "99:99")},
		{"no name", StateEnterCustomerInfo, Event{Type: EventEnterCustomerInfo, CustomerPhone: ptr.Ptr("+7999")}},
		{"blank phone", StateEnterCustomerInfo, Event{Type: EventEnterCustomerInfo, CustomerName: ptr.Ptr("Иван"), CustomerPhone: ptr.Ptr(" ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.state, ModeNew)
			err := s.Apply(tt.event, testNow)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestReadyToCommit(t *testing.T) {
	s := newSession(StateEnterCustomerInfo, ModeNew)
	s.StaffID = ptr.Ptr(int64(1))
	s.ServiceIDs = []int64{5}
	date := testNow.AddDate(0, 0, 1)
	s.Date = &date
	s.StartTime = ptr.Ptr(types.TimeString("10:00"))
	s.CustomerName = "Иван"
	s.CustomerPhone = "+7999"
	assert.True(t, s.ReadyToCommit())

	s.CustomerPhone = ""
	assert.False(t, s.ReadyToCommit())

	s.CustomerPhone = "+7999"
	s.State = StateSelectSlot
	assert.False(t, s.ReadyToCommit())
}
