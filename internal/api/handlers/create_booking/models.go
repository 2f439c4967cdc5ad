package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// CreateBookingRequest HTTP запрос на создание бронирования
type CreateBookingRequest struct {
	ResourceID int64  `json:"resourceId"`
	Date       string `json:"date"`      // Формат: "2006-01-02"
	StartTime  string `json:"startTime"` // Формат: "15:04"
	EndTime    string `json:"endTime"`   // Формат: "15:04"
}

// CreateBookingResponse HTTP ответ с созданным бронированием
type CreateBookingResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	ResourceID int64 `json:"resourceId"`
	StudioID   int64 `json:"studioId"`

	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`

	Status string `json:"status"`

	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*create_booking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &create_booking.Request{
		UserID:     userID,
		ResourceID: r.ResourceID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *create_booking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ResourceID:      resp.ResourceID,
		StudioID:        resp.StudioID,
		Date:            resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TotalAmount:     resp.TotalAmount,
		Currency:        resp.Currency,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
