package upsert_schedule

// UpsertScheduleRequest HTTP запрос на создание/обновление записи недельного расписания
type UpsertScheduleRequest struct {
	OpenTime    string `json:"openTime"`  // "10:00"
	CloseTime   string `json:"closeTime"` // "22:00"
	IsAvailable bool   `json:"isAvailable"`
}
