package update_studio

// UpdateStudioRequest HTTP запрос на обновление студии
// Отсутствующие поля остаются без изменений
type UpdateStudioRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
