package domain

import "time"

// EventType тип события аудита
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingApproved  EventType = "booking_approved"
	EventBookingRejected  EventType = "booking_rejected"
	EventBookingCancelled EventType = "booking_cancelled"
	EventBookingCompleted EventType = "booking_completed"
	EventUserRegistered   EventType = "user_registered"
	EventStudioPublished  EventType = "studio_published"
)

// EventLog append-only запись аудита
type EventLog struct {
	ID int64

	UserID    *int64
	BookingID *int64
	StudioID  *int64

	EventType   EventType
	Description *string

	CreatedAt time.Time
}
