package commit_reservation

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("commit_reservation: staff member not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена у сотрудника
	ErrServiceNotFound = errors.New("commit_reservation: service not found")

	// ErrStaffUnavailable возвращается, когда сотрудник не работает в указанную дату
	ErrStaffUnavailable = errors.New("commit_reservation: staff member is unavailable on this date")

	// ErrInvalidSlot возвращается, когда время начала не совпадает ни с одним слотом сетки
	ErrInvalidSlot = errors.New("commit_reservation: invalid time slot")

	// ErrSlotTaken возвращается, когда слот уже занят другим бронированием
	ErrSlotTaken = errors.New("commit_reservation: slot is already taken")

	// ErrTooLateToBook возвращается, когда слот на сегодня нарушает минимальное время упреждения
	ErrTooLateToBook = errors.New("commit_reservation: too late to book this slot")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("commit_reservation: invalid reservation date")

	// ErrOfferNotValid возвращается, когда указанная акция не активна или не подходит к услугам
	ErrOfferNotValid = errors.New("commit_reservation: offer is not valid for this reservation")

	// ErrReservationNotFound возвращается, когда переносимое бронирование не найдено
	ErrReservationNotFound = errors.New("commit_reservation: reservation not found")

	// ErrCannotReschedule возвращается, когда бронирование нельзя перенести (отменено)
	ErrCannotReschedule = errors.New("commit_reservation: reservation cannot be rescheduled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_reservation: internal error")
)
