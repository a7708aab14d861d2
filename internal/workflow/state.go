package workflow

// State состояние сессии бронирования
// Явный конечный автомат вместо флагов и номеров шагов:
// недостижимые комбинации (контакты без выбранного слота) исключены типом
type State string

const (
	StateSelectStaff       State = "select_staff"
	StateSelectServices    State = "select_services"
	StateSelectSlot        State = "select_slot"
	StateEnterCustomerInfo State = "enter_customer_info"
	StateCommitting        State = "committing"
	StateSuccess           State = "success"
	StateFailure           State = "failure"
	StateOfferPresented    State = "offer_presented"
	StateOfferDeclined     State = "offer_declined"
)

// Mode режим сессии: определяет точку входа и зафиксированные поля
type Mode string

const (
	// ModeNew обычное бронирование: полный путь от выбора сотрудника
	ModeNew Mode = "new"

	// ModeReschedule перенос: вход сразу в select_slot,
	// сотрудник и услуги зафиксированы исходным бронированием
	ModeReschedule Mode = "reschedule"

	// ModeOffer бронирование по акции после успешной фиксации:
	// вход в select_slot, услуга и сотрудник зафиксированы акцией,
	// дата не раньше даты исходного бронирования
	ModeOffer Mode = "offer"
)

// IsTerminal возвращает true для состояний без исходящих переходов
func (s State) IsTerminal() bool {
	switch s {
	case StateOfferDeclined:
		return true
	default:
		return false
	}
}

// AllowsBack возвращает true, если из состояния возможен шаг назад
// Назад нельзя только из committing и терминальных состояний
func (s State) AllowsBack() bool {
	switch s {
	case StateSelectServices, StateSelectSlot, StateEnterCustomerInfo, StateFailure:
		return true
	default:
		return false
	}
}

// EventType тип пользовательского события
type EventType string

const (
	EventSelectStaff       EventType = "select_staff"
	EventSelectServices    EventType = "select_services"
	EventSelectSlot        EventType = "select_slot"
	EventEnterCustomerInfo EventType = "enter_customer_info"
	EventBack              EventType = "back"
)
