package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bookline/BL-BookingEngine/internal/domain"
)

// 2025-10-13 - понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestResolveDay(t *testing.T) {
	week := domain.WeeklyHours{
		Monday: domain.DaySchedule{
			{Start: "09:00", End: "12:00"},
			{Start: "13:00", End: "18:00"},
		},
	}

	intervals := ResolveDay(week, monday)

	assert.Equal(t, []Interval{
		{Start: 540, End: 720},
		{Start: 780, End: 1080},
	}, intervals)
}

func TestResolveDay_ClosedDay(t *testing.T) {
	week := domain.WeeklyHours{
		Monday: domain.DaySchedule{{Start: "09:00", End: "18:00"}},
	}

	// Вторник - выходной
	tuesday := monday.AddDate(0, 0, 1)
	assert.Empty(t, ResolveDay(week, tuesday))
}

func TestResolveDay_MalformedRangesSkipped(t *testing.T) {
	week := domain.WeeklyHours{
		Monday: domain.DaySchedule{
			{Start: "9am", End: "12:00"},   // нечитаемое начало
			{Start: "13:00", End: "25:00"}, // час вне диапазона
			{Start: "16:00", End: "14:00"}, // start >= end
			{Start: "10:00", End: "11:00"}, // единственное валидное окно
		},
	}

	intervals := ResolveDay(week, monday)

	assert.Equal(t, []Interval{{Start: 600, End: 660}}, intervals)
}

func TestResolveDay_AllMalformed(t *testing.T) {
	week := domain.WeeklyHours{
		Monday: domain.DaySchedule{{Start: "", End: ""}},
	}

	// Битые данные деградируют до "нет доступности", без паники и ошибки
	assert.Empty(t, ResolveDay(week, monday))
}
