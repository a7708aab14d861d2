package messenger

// Notification templates
const (
	TemplateReservationCreated     = "reservation_created"
	TemplateReservationRescheduled = "reservation_rescheduled"
	TemplateReservationCancelled   = "reservation_cancelled"
)

// NotifyRequest запрос на отправку уведомления
type NotifyRequest struct {
	Template  string                 `json:"template"`
	Recipient string                 `json:"recipient"`
	Payload   map[string]interface{} `json:"payload"`
}
