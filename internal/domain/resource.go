package domain

import "time"

// ResourceType тип бронируемого помещения
type ResourceType string

const (
	ResourceLiveRoom    ResourceType = "live_room"
	ResourceControlRoom ResourceType = "control_room"
	ResourceBooth       ResourceType = "booth"
	ResourceRehearsal   ResourceType = "rehearsal"
)

// IsValid проверяет, что тип входит в закрытый набор
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceLiveRoom, ResourceControlRoom, ResourceBooth, ResourceRehearsal:
		return true
	}
	return false
}

// Resource represents a bookable room/space within a studio
type Resource struct {
	ID       int64
	StudioID int64

	Name         string
	ResourceType ResourceType
	Description  *string

	BasePricePerHour float64
	MaxOccupancy     *int

	IsActive  bool
	CreatedAt time.Time
}

// SlotPrice цена получасового слота
func (r *Resource) SlotPrice() float64 {
	return r.BasePricePerHour / 2
}
