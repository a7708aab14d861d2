// Package scheduling чистая логика вычисления доступных слотов:
// разворачивание недельного расписания в интервалы дня, генерация
// кандидатов и фильтрация конфликтов. Без сети и побочных эффектов.
package scheduling

import (
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) в минутах с начала суток
type Interval struct {
	Start int
	End   int
}

// Duration возвращает длину интервала в минутах
func (i Interval) Duration() int {
	return i.End - i.Start
}

// ResolveDay разворачивает недельное расписание в упорядоченный список
// открытых интервалов для дня недели указанной даты
//
// Некорректные пары времени (нечитаемый формат, start >= end) пропускаются,
// а не приводят к ошибке: бизнес с битыми данными деградирует до
// "нет доступности", страница не падает
func ResolveDay(week domain.WeeklyHours, date time.Time) []Interval {
	ranges := week.ForWeekday(date)
	if len(ranges) == 0 {
		return nil
	}

	intervals := make([]Interval, 0, len(ranges))
	for _, r := range ranges {
		start, err := types.TimeString(r.Start).Minutes()
		if err != nil {
			continue
		}
		end, err := types.TimeString(r.End).Minutes()
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}

	return intervals
}
