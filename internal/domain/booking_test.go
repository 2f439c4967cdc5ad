package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to approved", StatusPendingApproval, StatusApproved, true},
		{"pending to rejected", StatusPendingApproval, StatusRejected, true},
		{"pending to cancelled", StatusPendingApproval, StatusCancelled, true},
		{"pending to completed", StatusPendingApproval, StatusCompleted, false},
		{"approved to confirmed", StatusApproved, StatusConfirmed, true},
		{"approved to cancelled", StatusApproved, StatusCancelled, true},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"confirmed to checked_in", StatusConfirmed, StatusCheckedIn, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, false},
		{"checked_in to completed", StatusCheckedIn, StatusCompleted, true},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusApproved, false},
		{"refunded is terminal", StatusRefunded, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	terminal := []BookingStatus{StatusRejected, StatusCompleted, StatusCancelled, StatusRefunded}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "status %s should be terminal", s)
	}

	active := []BookingStatus{StatusPendingApproval, StatusApproved, StatusConfirmed, StatusCheckedIn}
	for _, s := range active {
		assert.False(t, s.IsTerminal(), "status %s should not be terminal", s)
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPendingApproval.IsValid())
	assert.True(t, StatusRefunded.IsValid())
	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_BlocksSlot(t *testing.T) {
	tests := []struct {
		status BookingStatus
		blocks bool
	}{
		{StatusPendingApproval, true},
		{StatusApproved, true},
		{StatusConfirmed, true},
		{StatusCheckedIn, true},
		{StatusCompleted, true},
		{StatusRejected, false},
		{StatusCancelled, false},
		{StatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.blocks, b.BlocksSlot())
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPendingApproval}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusApproved}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestBooking_StartsAt(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("14:30"),
	}

	startsAt, err := b.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), startsAt)
}

func TestBooking_StartsAt_InvalidTime(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("bad"),
	}

	_, err := b.StartsAt()
	assert.Error(t, err)
}
