package scheduling

import (
	"github.com/bookline/BL-BookingEngine/internal/domain"
)

// FilterConflicts отбрасывает кандидатов, пересекающихся с существующими
// бронированиями, и (для сегодняшней даты) слоты внутри минимального
// времени упреждения
//
// Кандидат s занимает интервал [s, s + totalDuration + buffer);
// бронирование r занимает [r.start, r.start + r.duration + buffer).
// Пересечение полуоткрытых интервалов: s < rEnd && rStart < sEnd -
// граничащие интервалы пересечением не считаются
//
// Если sameDay = true, кандидат отбрасывается при s <= nowMinutes + leadTime
//
// Отменённые бронирования время не занимают; бронирования с нечитаемым
// временем начала пропускаются (деградация вместо ошибки)
func FilterConflicts(
	candidates []int,
	reservations []*domain.Reservation,
	totalDuration int,
	buffer int,
	sameDay bool,
	nowMinutes int,
	leadTimeMinutes int,
) []int {
	occupied := occupiedIntervals(reservations, buffer)

	result := make([]int, 0, len(candidates))
	for _, s := range candidates {
		if sameDay && s <= nowMinutes+leadTimeMinutes {
			continue
		}

		sEnd := s + totalDuration + buffer
		if overlapsAny(s, sEnd, occupied) {
			continue
		}

		result = append(result, s)
	}

	return result
}

// occupiedIntervals вычисляет занятые интервалы активных бронирований
func occupiedIntervals(reservations []*domain.Reservation, buffer int) []Interval {
	occupied := make([]Interval, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		start, err := r.StartTime.Minutes()
		if err != nil {
			continue
		}
		occupied = append(occupied, Interval{Start: start, End: start + r.DurationMinutes + buffer})
	}
	return occupied
}

func overlapsAny(start, end int, occupied []Interval) bool {
	for _, o := range occupied {
		if start < o.End && o.Start < end {
			return true
		}
	}
	return false
}
