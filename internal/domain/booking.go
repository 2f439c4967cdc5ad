package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingApproval BookingStatus = "pending_approval"
	StatusApproved        BookingStatus = "approved"
	StatusRejected        BookingStatus = "rejected"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusCheckedIn       BookingStatus = "checked_in"
	StatusCompleted       BookingStatus = "completed"
	StatusCancelled       BookingStatus = "cancelled"
	StatusRefunded        BookingStatus = "refunded"
)

// allowedTransitions карта допустимых переходов статусов
// Терминальные статусы (rejected, completed, cancelled, refunded) переходов не имеют
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusCheckedIn, StatusCompleted},
	StatusCheckedIn:       {StatusCompleted},
}

// IsValid проверяет, что статус входит в закрытый набор
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected, StatusConfirmed,
		StatusCheckedIn, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal проверяет, что статус терминальный (бронирование неизменяемо)
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo проверяет допустимость перехода в target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Booking represents a booking request/reservation for a studio resource
type Booking struct {
	ID         int64
	UserID     int64
	ResourceID int64
	StudioID   int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status BookingStatus

	TotalAmount float64
	Currency    string

	ApprovedAt      *time.Time
	ApprovedBy      *int64
	RejectionReason *string

	CancelledAt      *time.Time
	CancelReason     *string
	RefundPercentage *float64
	RefundAmount     *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot возвращает true, если бронирование занимает слот
// (отклонённые и отменённые бронирования слот освобождают)
func (b *Booking) BlocksSlot() bool {
	switch b.Status {
	case StatusRejected, StatusCancelled, StatusRefunded:
		return false
	}
	return true
}

// CanBeApproved returns true if the booking can be approved or rejected
func (b *Booking) CanBeApproved() bool {
	return b.Status == StatusPendingApproval
}

// CanBeCancelled returns true if the booking can be cancelled by the customer
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingApproval || b.Status == StatusApproved
}

// CanBeCompleted returns true if the booking can be marked completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// StartsAt возвращает момент начала бронирования (дата + время начала)
func (b *Booking) StartsAt() (time.Time, error) {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(), 0, 0, 0, 0, b.BookingDate.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// StudioBookingsFilter фильтр для получения бронирований по студиям владельца
type StudioBookingsFilter struct {
	StudioIDs []int64        // Студии владельца (обязательно непустой список)
	StartDate *time.Time     // Начало периода (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
	Status    *BookingStatus // Фильтр по статусу (опционально)
}
