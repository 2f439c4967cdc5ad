package get_available_slots

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP ответ со слотами на день
type SlotsResponse struct {
	Date       string `json:"date"`
	ResourceID int64  `json:"resourceId"`
	Currency   string `json:"currency"`
	Slots      []Slot `json:"slots"`
}

// Slot получасовой слот рабочего окна
type Slot struct {
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *get_available_slots.Response) *SlotsResponse {
	slots := make([]Slot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, Slot{
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			Price:       s.Price,
			IsAvailable: s.IsAvailable,
		})
	}

	return &SlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ResourceID: resp.ResourceID,
		Currency:   resp.Currency,
		Slots:      slots,
	}
}
