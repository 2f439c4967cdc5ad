package domain

import "time"

// Studio represents a music studio with bookable resources
type Studio struct {
	ID      int64
	OwnerID int64

	Name        string
	Description *string

	Address    string
	City       *string
	Phone      *string

	IsActive    bool
	IsPublished bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsBookings проверяет, что студия принимает бронирования
func (s *Studio) AcceptsBookings() bool {
	return s.IsActive && s.IsPublished
}
