package scheduling

import "sort"

// GenerateSlots генерирует кандидатов времени начала для набора открытых интервалов
//
// Внутри каждого интервала курсор стартует с его начала и двигается
// с фиксированным шагом totalDuration + buffer; слот эмитится, пока
// cursor + totalDuration + buffer <= intervalEnd. Это последовательная
// непересекающаяся упаковка: генератор сознательно НЕ ищет зазоры между
// существующими бронированиями - семантика слотов остается предсказуемой
// для клиента
//
// Результат: минуты начала слотов по всем интервалам, отсортированные
// по возрастанию, без дубликатов
func GenerateSlots(intervals []Interval, totalDuration, buffer int) []int {
	if totalDuration <= 0 {
		return []int{}
	}

	stride := totalDuration + buffer

	slots := make([]int, 0)
	for _, interval := range intervals {
		for cursor := interval.Start; cursor+stride <= interval.End; cursor += stride {
			slots = append(slots, cursor)
		}
	}

	sort.Ints(slots)

	// Интервалы могут пересекаться - убираем дубликаты, сохраняя порядок
	deduped := slots[:0]
	for i, s := range slots {
		if i == 0 || slots[i-1] != s {
			deduped = append(deduped, s)
		}
	}

	return deduped
}
