package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlots_StrideWithBuffer(t *testing.T) {
	// Рабочие часы 09:00-12:00, услуга 60 минут, буфер 10 минут
	// 09:00 (+70 <= 720), 10:10 (610+70=680 <= 720), 11:20 исключен (680+70=750 > 720)
	intervals := []Interval{{Start: 540, End: 720}}

	slots := GenerateSlots(intervals, 60, 10)

	assert.Equal(t, []int{540, 610}, slots)
}

func TestGenerateSlots_ZeroBuffer(t *testing.T) {
	// 10:00-12:00, услуга 30 минут без буфера: 10:00, 10:30, 11:00, 11:30
	intervals := []Interval{{Start: 600, End: 720}}

	slots := GenerateSlots(intervals, 30, 0)

	assert.Equal(t, []int{600, 630, 660, 690}, slots)
}

func TestGenerateSlots_MultipleIntervals(t *testing.T) {
	intervals := []Interval{
		{Start: 540, End: 660},  // 09:00-11:00
		{Start: 780, End: 900},  // 13:00-15:00
	}

	slots := GenerateSlots(intervals, 45, 15)

	assert.Equal(t, []int{540, 600, 780, 840}, slots)
}

func TestGenerateSlots_OverlappingIntervalsDeduplicated(t *testing.T) {
	// Интервалы не обязаны не пересекаться - дубликаты начала убираются
	intervals := []Interval{
		{Start: 540, End: 720},
		{Start: 540, End: 660},
	}

	slots := GenerateSlots(intervals, 60, 0)

	assert.Equal(t, []int{540, 600, 660}, slots)
}

func TestGenerateSlots_UnsortedIntervals(t *testing.T) {
	// Резолвер не сортирует окна - генератор возвращает слоты по возрастанию
	intervals := []Interval{
		{Start: 780, End: 840},
		{Start: 540, End: 600},
	}

	slots := GenerateSlots(intervals, 30, 0)

	assert.Equal(t, []int{540, 780}, slots)
}

func TestGenerateSlots_TooShortInterval(t *testing.T) {
	// Интервал короче totalDuration + buffer не дает ни одного слота
	intervals := []Interval{{Start: 540, End: 600}}

	assert.Empty(t, GenerateSlots(intervals, 60, 10))
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	intervals := []Interval{{Start: 540, End: 720}}

	assert.Empty(t, GenerateSlots(intervals, 0, 10))
}

// Каждый слот s удовлетворяет s + totalDuration + buffer <= intervalEnd
func TestGenerateSlots_NeverExceedsIntervalEnd(t *testing.T) {
	intervals := []Interval{
		{Start: 540, End: 721},
		{Start: 800, End: 1033},
	}

	for _, duration := range []int{15, 30, 45, 60, 90} {
		for _, buffer := range []int{0, 5, 10, 30} {
			slots := GenerateSlots(intervals, duration, buffer)
			for _, s := range slots {
				fits := false
				for _, iv := range intervals {
					if s >= iv.Start && s+duration+buffer <= iv.End {
						fits = true
						break
					}
				}
				assert.True(t, fits, "slot %d (duration=%d buffer=%d) exceeds its interval", s, duration, buffer)
			}
		}
	}
}

// Повторное вычисление на неизменном снапшоте дает идентичный результат
func TestGenerateSlots_Idempotent(t *testing.T) {
	intervals := []Interval{{Start: 540, End: 720}, {Start: 780, End: 1080}}

	first := GenerateSlots(intervals, 40, 10)
	second := GenerateSlots(intervals, 40, 10)

	assert.Equal(t, first, second)
}
