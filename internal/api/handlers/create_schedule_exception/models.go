package create_schedule_exception

// CreateExceptionRequest HTTP запрос на создание исключения из расписания
type CreateExceptionRequest struct {
	Date          string   `json:"date"`                // "2026-03-15"
	StartTime     *string  `json:"startTime,omitempty"` // Суженное окно (опционально)
	EndTime       *string  `json:"endTime,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
	Reason        *string  `json:"reason,omitempty"`
	OverridePrice *float64 `json:"overridePrice,omitempty"`
}
