package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// AvailabilityTemplate недельное расписание работы ресурса
// Инвариант: не более одной записи на пару (resource_id, day_of_week)
type AvailabilityTemplate struct {
	ID         int64
	ResourceID int64

	DayOfWeek   int // 0 = Sunday ... 6 = Saturday
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	IsAvailable bool

	CreatedAt time.Time
}

// AvailabilityException исключение из недельного расписания на конкретную дату
// Позволяет закрыть день, сузить окно или переопределить цену
type AvailabilityException struct {
	ID         int64
	ResourceID int64

	Date          time.Time
	StartTime     *types.TimeString
	EndTime       *types.TimeString
	IsAvailable   bool
	Reason        *string
	OverridePrice *float64

	CreatedAt time.Time
}

// HasWindow проверяет, что исключение задаёт собственное временное окно
func (e *AvailabilityException) HasWindow() bool {
	return e.StartTime != nil && e.EndTime != nil
}
