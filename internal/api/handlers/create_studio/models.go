package create_studio

// CreateStudioRequest HTTP запрос на создание студии
type CreateStudioRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}
