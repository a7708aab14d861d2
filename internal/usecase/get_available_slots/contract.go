package get_available_slots

import (
	"context"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByStaffWithFilter получает бронирования сотрудника на конкретную дату
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Reservation, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetSchedule(ctx context.Context, staffID int64) (*domain.StaffSchedule, error)
	GetServices(ctx context.Context, staffID int64) ([]*domain.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
