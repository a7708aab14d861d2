package workflow

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("workflow: session not found")

	// ErrInvalidTransition возвращается при недопустимом переходе из текущего состояния
	ErrInvalidTransition = errors.New("workflow: invalid transition")

	// ErrInvalidEvent возвращается при некорректной полезной нагрузке события
	ErrInvalidEvent = errors.New("workflow: invalid event payload")

	// ErrDateBelowFloor возвращается, когда дата слота раньше даты исходного бронирования
	ErrDateBelowFloor = errors.New("workflow: date is below the offer date floor")

	// ErrNotReadyToCommit возвращается при попытке подтвердить незаполненную сессию
	ErrNotReadyToCommit = errors.New("workflow: session is not ready to commit")

	// ErrNoOfferPending возвращается, когда сессии нечего отвечать на предложение акции
	ErrNoOfferPending = errors.New("workflow: no offer is pending a response")

	// ErrReservationNotFound возвращается, когда переносимое бронирование не найдено
	ErrReservationNotFound = errors.New("workflow: reservation not found")

	// ErrCannotReschedule возвращается, когда бронирование нельзя перенести
	ErrCannotReschedule = errors.New("workflow: reservation cannot be rescheduled")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("workflow: internal error")
)
