package domain

// Slot and booking constants
const (
	SlotDurationMinutes       = 30
	MinBookingDurationMinutes = 30
)

// Cancellation policy: фиксированная глобальная политика возврата
const (
	RefundCutoffHours         = 24
	RefundPercentBeforeCutoff = 80.0
	RefundPercentAfterCutoff  = 0.0
)

// Business validation constants
const (
	MinReasonLength    = 5
	MaxReasonLength    = 500
	MinPasswordLength  = 8
	MaxWeekday         = 6 // 0 = Sunday ... 6 = Saturday
	DefaultCurrency    = "INR"
	MaxBookingsPerPage = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых бронирование занимает слот
// Используется при фильтрации для подсчёта доступности
var BlockingStatuses = []BookingStatus{
	StatusPendingApproval,
	StatusApproved,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCompleted,
}

// ReleasedStatuses статусы, освобождающие слот
var ReleasedStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusRefunded,
}
