package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

func reservation(start types.TimeString, duration int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestFilterConflicts_OverlapRejected(t *testing.T) {
	// Подтвержденное бронирование 10:00 на 30 минут с буфером 10 занимает [10:00, 10:40)
	// Кандидат 09:50 на 30+10 минут занимает [09:50, 10:30) - пересекается, отбрасывается
	reservations := []*domain.Reservation{
		reservation("10:00", 30, domain.StatusApproved),
	}

	result := FilterConflicts([]int{590}, reservations, 30, 10, false, 0, 60)

	assert.Empty(t, result)
}

func TestFilterConflicts_AdjacentAccepted(t *testing.T) {
	// Бронирование занимает [10:00, 10:40); кандидат [09:20, 10:00) граничит - не конфликт
	reservations := []*domain.Reservation{
		reservation("10:00", 30, domain.StatusApproved),
	}

	result := FilterConflicts([]int{560}, reservations, 30, 10, false, 0, 60)

	assert.Equal(t, []int{560}, result)
}

func TestFilterConflicts_PendingAlsoOccupies(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("10:00", 30, domain.StatusPending),
	}

	result := FilterConflicts([]int{600}, reservations, 30, 0, false, 0, 60)

	assert.Empty(t, result)
}

func TestFilterConflicts_CancelledIgnored(t *testing.T) {
	// Отмененное бронирование не занимает ничего
	reservations := []*domain.Reservation{
		reservation("10:00", 30, domain.StatusCancelled),
	}

	result := FilterConflicts([]int{600}, reservations, 30, 10, false, 0, 60)

	assert.Equal(t, []int{600}, result)
}

func TestFilterConflicts_SameDayLeadTime(t *testing.T) {
	// Сейчас 14:00 (840), упреждение 60 минут:
	// кандидат 14:30 (870) отбрасывается, 15:00 (900) тоже (s <= now+60), 15:05 (905) проходит
	result := FilterConflicts([]int{870, 900, 905}, nil, 30, 0, true, 840, 60)

	assert.Equal(t, []int{905}, result)
}

func TestFilterConflicts_OtherDayNoLeadTime(t *testing.T) {
	result := FilterConflicts([]int{540}, nil, 30, 0, false, 840, 60)

	assert.Equal(t, []int{540}, result)
}

func TestFilterConflicts_MalformedReservationSkipped(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("not-a-time", 30, domain.StatusApproved),
	}

	// Бронирование с нечитаемым временем не блокирует слоты
	result := FilterConflicts([]int{600}, reservations, 30, 10, false, 0, 60)

	assert.Equal(t, []int{600}, result)
}

func TestFilterConflicts_KeepsAscendingOrder(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("11:20", 60, domain.StatusApproved),
	}

	// 09:00-18:00, услуга 60 минут, буфер 10
	candidates := GenerateSlots([]Interval{{Start: 540, End: 1080}}, 60, 10)
	result := FilterConflicts(candidates, reservations, 60, 10, false, 0, 60)

	for i := 1; i < len(result); i++ {
		assert.Less(t, result[i-1], result[i])
	}
}

// Ни один принятый слот не пересекается с занятым интервалом
func TestFilterConflicts_NoAcceptedSlotIntersects(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("09:30", 45, domain.StatusApproved),
		reservation("12:00", 60, domain.StatusPending),
		reservation("15:15", 30, domain.StatusApproved),
	}
	buffer := 10
	duration := 40

	candidates := GenerateSlots([]Interval{{Start: 540, End: 1080}}, duration, buffer)
	accepted := FilterConflicts(candidates, reservations, duration, buffer, false, 0, 60)

	for _, s := range accepted {
		sEnd := s + duration + buffer
		for _, r := range reservations {
			rStart, err := r.StartTime.Minutes()
			assert.NoError(t, err)
			rEnd := rStart + r.DurationMinutes + buffer
			intersects := s < rEnd && rStart < sEnd
			assert.False(t, intersects, "slot %d intersects reservation at %s", s, r.StartTime)
		}
	}
}

// Полный пайплайн: резолвер -> генератор -> фильтр, повторный прогон идентичен
func TestPipeline_Idempotent(t *testing.T) {
	week := domain.WeeklyHours{
		Monday: domain.DaySchedule{{Start: "09:00", End: "12:00"}},
	}
	reservations := []*domain.Reservation{
		reservation("10:10", 60, domain.StatusApproved),
	}

	run := func() []int {
		intervals := ResolveDay(week, monday)
		candidates := GenerateSlots(intervals, 60, 10)
		return FilterConflicts(candidates, reservations, 60, 10, false, 0, 60)
	}

	assert.Equal(t, run(), run())
}

// Слот, на который только что создано бронирование, при повторном прогоне занят
func TestPipeline_CommittedSlotRejected(t *testing.T) {
	week := domain.WeeklyHours{
		Monday: domain.DaySchedule{{Start: "09:00", End: "12:00"}},
	}

	intervals := ResolveDay(week, monday)
	candidates := GenerateSlots(intervals, 60, 10)
	free := FilterConflicts(candidates, nil, 60, 10, false, 0, 60)
	assert.Equal(t, []int{540, 610}, free)

	// "Коммитим" первый слот
	committedStart, err := types.NewTimeStringFromMinutes(free[0])
	assert.NoError(t, err)
	committed := []*domain.Reservation{reservation(committedStart, 60, domain.StatusPending)}

	after := FilterConflicts(candidates, committed, 60, 10, false, 0, 60)
	assert.NotContains(t, after, free[0])
	assert.Equal(t, []int{610}, after)
}
