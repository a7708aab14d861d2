package cancel_reservation

// CancelRequest HTTP запрос на отмену бронирования
type CancelRequest struct {
	CancellationReason string `json:"cancellationReason"`
}
