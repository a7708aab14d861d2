package commit_reservation

import (
	"context"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/internal/integrations/messenger"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Reservation, error)
	Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetSchedule(ctx context.Context, staffID int64) (*domain.StaffSchedule, error)
	GetServices(ctx context.Context, staffID int64) ([]*domain.Service, error)
	GetOffers(ctx context.Context, staffID int64) ([]*domain.Offer, error)
}

// MessengerClient интерфейс клиента сервиса уведомлений
type MessengerClient interface {
	Notify(ctx context.Context, req messenger.NotifyRequest) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
