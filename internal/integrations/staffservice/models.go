package staffservice

import (
	"time"

	"github.com/bookline/BL-BookingEngine/internal/domain"
)

// TimeRange пара времени "HH:MM" одного рабочего окна
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule недельное расписание и буфер сотрудника
type Schedule struct {
	StaffID       int64       `json:"staffId"`
	BufferMinutes int         `json:"bufferMinutes"`
	Monday        []TimeRange `json:"monday"`
	Tuesday       []TimeRange `json:"tuesday"`
	Wednesday     []TimeRange `json:"wednesday"`
	Thursday      []TimeRange `json:"thursday"`
	Friday        []TimeRange `json:"friday"`
	Saturday      []TimeRange `json:"saturday"`
	Sunday        []TimeRange `json:"sunday"`
}

// Service услуга сотрудника
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// Offer акция сотрудника
type Offer struct {
	ID                 int64     `json:"id"`
	StaffID            int64     `json:"staffId"`
	ServiceID          int64     `json:"serviceId"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty"`
	FixedPrice         *float64  `json:"fixedPrice,omitempty"`
	StartAt            time.Time `json:"startAt"`
	EndAt              time.Time `json:"endAt"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует расписание в доменную модель
func (s *Schedule) ToDomain() *domain.StaffSchedule {
	return &domain.StaffSchedule{
		StaffID:       s.StaffID,
		BufferMinutes: s.BufferMinutes,
		WeeklyHours: domain.WeeklyHours{
			Monday:    toDomainDay(s.Monday),
			Tuesday:   toDomainDay(s.Tuesday),
			Wednesday: toDomainDay(s.Wednesday),
			Thursday:  toDomainDay(s.Thursday),
			Friday:    toDomainDay(s.Friday),
			Saturday:  toDomainDay(s.Saturday),
			Sunday:    toDomainDay(s.Sunday),
		},
	}
}

func toDomainDay(ranges []TimeRange) domain.DaySchedule {
	if len(ranges) == 0 {
		return nil
	}
	day := make(domain.DaySchedule, len(ranges))
	for i, r := range ranges {
		day[i] = domain.TimeRange{Start: r.Start, End: r.End}
	}
	return day
}

// ToDomain конвертирует услугу в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// ToDomain конвертирует акцию в доменную модель
func (o *Offer) ToDomain() *domain.Offer {
	return &domain.Offer{
		ID:                 o.ID,
		StaffID:            o.StaffID,
		ServiceID:          o.ServiceID,
		DiscountPercentage: o.DiscountPercentage,
		FixedPrice:         o.FixedPrice,
		StartAt:            o.StartAt,
		EndAt:              o.EndAt,
	}
}
