package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ResourceID int64     // ID ресурса студии
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	ResourceID int64     // ID ресурса
	Currency   string    // Валюта цен
	Slots      []Slot    // Слоты рабочего окна дня
}

// Slot модель получасового слота
type Slot struct {
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	EndTime     types.TimeString // Время конца слота (например, "10:30")
	Price       float64          // Цена слота
	IsAvailable bool             // Свободен ли слот
}
