package workflow

import (
	"context"
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
	"github.com/bookline/BL-BookingEngine/internal/usecase/commit_reservation"
)

// SessionStore интерфейс хранилища сессий
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// CommitUseCase интерфейс операции фиксации бронирования
type CommitUseCase interface {
	Execute(ctx context.Context, req *commit_reservation.Request) (*commit_reservation.Response, error)
}

// ReservationReader интерфейс чтения бронирований (для входа в режим переноса)
type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
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
