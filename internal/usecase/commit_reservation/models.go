package commit_reservation

import (
	"time"

	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// Request модель запроса на фиксацию бронирования
type Request struct {
	UserID     int64
	StaffID    int64
	ServiceIDs []int64
	Date       time.Time
	StartTime  types.TimeString

	// Контактные данные клиента (обязательны)
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	// ID существующего бронирования при переносе (nil - новое бронирование)
	RescheduleOf *int64

	// ID акции, по которой бронируется слот (nil - обычное бронирование)
	OfferID *int64
}

// Response модель ответа на фиксацию бронирования
type Response struct {
	ID              int64
	UserID          int64
	StaffID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceNames    []string
	TotalPrice      float64
	IsOfferBooking  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Акция, которую можно предложить клиенту после успешной фиксации
	// (nil, если подходящей акции нет или бронирование само по акции)
	MatchedOffer *MatchedOffer
}

// MatchedOffer акция, предлагаемая клиенту после успешного бронирования
type MatchedOffer struct {
	ID            int64
	ServiceID     int64
	ServiceName   string
	OriginalPrice float64
	OfferPrice    float64
	EndAt         time.Time
}
