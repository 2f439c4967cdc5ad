package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // ID клиента (из токена)
	ResourceID int64            // ID ресурса студии
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	EndTime    types.TimeString // Время конца (например, "11:30")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64 // ID созданного бронирования
	UserID     int64 // ID клиента
	ResourceID int64 // ID ресурса
	StudioID   int64 // ID студии

	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах

	Status string // Статус бронирования (pending_approval)

	TotalAmount float64 // Итоговая стоимость
	Currency    string  // Валюта

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
