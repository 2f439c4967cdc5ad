package reject_booking

// RejectBookingRequest HTTP запрос на отклонение бронирования
type RejectBookingRequest struct {
	Reason string `json:"reason"`
}
