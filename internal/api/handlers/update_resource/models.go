package update_resource

// UpdateResourceRequest HTTP запрос на обновление ресурса
// Отсутствующие поля остаются без изменений
type UpdateResourceRequest struct {
	Name             *string  `json:"name,omitempty"`
	ResourceType     *string  `json:"resourceType,omitempty"`
	Description      *string  `json:"description,omitempty"`
	BasePricePerHour *float64 `json:"basePricePerHour,omitempty"`
	MaxOccupancy     *int     `json:"maxOccupancy,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
}
