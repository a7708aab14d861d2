package reservations

import (
	"context"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/internal/integrations/messenger"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Reservation, error)
	Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// MessengerClient интерфейс клиента сервиса уведомлений
type MessengerClient interface {
	Notify(ctx context.Context, req messenger.NotifyRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
