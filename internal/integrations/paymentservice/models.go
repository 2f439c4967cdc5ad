package paymentservice

// RefundRequest запрос на возврат средств по отмененному бронированию
type RefundRequest struct {
	BookingID int64   `json:"booking_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reason    string  `json:"reason"`
}

// RefundResponse ответ платежного сервиса
type RefundResponse struct {
	RefundID string  `json:"refund_id"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
}

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
