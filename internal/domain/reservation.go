package domain

import (
	"time"

	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a committed appointment on a staff member's timeline
// Занимает интервал [start, start + duration + buffer) пока статус pending или approved
type Reservation struct {
	ID              int64
	StaffID         int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Customer contact fields (required at commit time)
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	// Denormalized data for history
	ServiceIDs     []int64
	ServiceNames   []string
	TotalPrice     float64
	IsOfferBooking bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its time interval
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanBeRescheduled returns true if the reservation start can be moved
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// StaffDayFilter фильтр для получения бронирований сотрудника
type StaffDayFilter struct {
	StaffID         int64      // Обязательный параметр
	Date            *time.Time // Конкретная дата (опционально, если nil - без ограничения)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *ReservationStatus
	ExcludeID       *int64 // Исключить бронирование по ID (для переноса)
	IncludeInactive bool   // Включать ли отменённые бронирования
}
