package domain

import "time"

// TimeRange одно открытое окно рабочего дня, пара "HH:MM" строк
// По контракту start < end; окна одного дня не обязаны быть отсортированы
// или не пересекаться - резолвер трактует их как независимые
type TimeRange struct {
	Start string
	End   string
}

// DaySchedule рабочие окна одного дня недели (пусто = выходной)
type DaySchedule []TimeRange

// WeeklyHours повторяющееся недельное расписание сотрудника
type WeeklyHours struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForWeekday возвращает рабочие окна для дня недели указанной даты
func (w WeeklyHours) ForWeekday(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return nil
	}
}

// StaffSchedule расписание и буфер сотрудника, полученные от StaffService
type StaffSchedule struct {
	StaffID       int64
	WeeklyHours   WeeklyHours
	BufferMinutes int // Обязательный простой после каждой записи (уборка/дорога)
}
