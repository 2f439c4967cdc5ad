package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetStudioBookingsRequest запрос на получение бронирований по студиям владельца
type GetStudioBookingsRequest struct {
	Actor     domain.Actor
	StudioID  *int64     `json:"studioId,omitempty"`  // Конкретная студия (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// RejectBookingRequest запрос на отклонение бронирования
type RejectBookingRequest struct {
	Actor  domain.Actor
	Reason string `json:"reason"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  domain.Actor
	Reason string `json:"reason"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	ResourceID int64 `json:"resourceId"`
	StudioID   int64 `json:"studioId"`

	BookingDate     string `json:"bookingDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "11:30"
	DurationMinutes int    `json:"durationMinutes"`

	Status string `json:"status"`

	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`

	ApprovedAt      *string `json:"approvedAt,omitempty"` // ISO 8601 format
	ApprovedBy      *int64  `json:"approvedBy,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`

	CancelledAt      *string  `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancelReason     *string  `json:"cancelReason,omitempty"`
	RefundPercentage *float64 `json:"refundPercentage,omitempty"`
	RefundAmount     *float64 `json:"refundAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResult результат отмены бронирования с рассчитанным возвратом
type CancelResult struct {
	BookingID        int64   `json:"bookingId"`
	Status           string  `json:"status"`
	RefundPercentage float64 `json:"refundPercentage"`
	RefundAmount     float64 `json:"refundAmount"`
	Currency         string  `json:"currency"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		ResourceID:       b.ResourceID,
		StudioID:         b.StudioID,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		DurationMinutes:  b.DurationMinutes,
		Status:           string(b.Status),
		TotalAmount:      b.TotalAmount,
		Currency:         b.Currency,
		ApprovedBy:       b.ApprovedBy,
		RejectionReason:  b.RejectionReason,
		CancelReason:     b.CancelReason,
		RefundPercentage: b.RefundPercentage,
		RefundAmount:     b.RefundAmount,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	// Конвертируем временные метки в строки ISO 8601
	if b.ApprovedAt != nil {
		approvedStr := b.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedStr
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
