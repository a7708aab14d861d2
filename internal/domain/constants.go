package domain

// Default scheduling values
const (
	// DefaultLeadTimeMinutes минимальное время между "сейчас" и слотом на сегодня
	DefaultLeadTimeMinutes = 60
)

// Business validation constants
const (
	MaxServiceDurationMinutes      = 480 // 8 hours
	MaxNotesLength                 = 500
	MaxCancellationReasonLength    = 500
	MaxCustomerFieldLength         = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих время на таймлайне сотрудника
// Используется при подсчёте конфликтов слотов
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// InactiveStatuses список статусов, не занимающих время
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}
