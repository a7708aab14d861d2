package get_available_slots

import (
	"fmt"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// resolveServices сопоставляет запрошенные ID с услугами сотрудника,
// сохраняя порядок запроса
func resolveServices(requested []int64, available []*domain.Service) ([]*domain.Service, error) {
	byID := make(map[int64]*domain.Service, len(available))
	for _, s := range available {
		byID[s.ID] = s
	}

	resolved := make([]*domain.Service, 0, len(requested))
	for _, id := range requested {
		service, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		resolved = append(resolved, service)
	}

	return resolved, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// minutesOfDay возвращает количество минут с начала суток для момента времени
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
