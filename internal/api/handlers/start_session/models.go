package start_session

// StartSessionRequest HTTP запрос на создание сессии бронирования
// rescheduleOf превращает сессию в перенос существующего бронирования
type StartSessionRequest struct {
	RescheduleOf *int64 `json:"rescheduleOf,omitempty"`
}
