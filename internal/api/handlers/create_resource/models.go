package create_resource

// CreateResourceRequest HTTP запрос на создание ресурса студии
type CreateResourceRequest struct {
	Name             string  `json:"name"`
	ResourceType     string  `json:"resourceType"`
	Description      *string `json:"description,omitempty"`
	BasePricePerHour float64 `json:"basePricePerHour"`
	MaxOccupancy     *int    `json:"maxOccupancy,omitempty"`
}
