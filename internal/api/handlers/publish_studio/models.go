package publish_studio

// PublishStudioRequest HTTP запрос на публикацию/снятие с публикации студии
type PublishStudioRequest struct {
	IsPublished bool `json:"isPublished"`
}

// PublishStudioResponse HTTP ответ с новым состоянием публикации
type PublishStudioResponse struct {
	StudioID    int64 `json:"studioId"`
	IsPublished bool  `json:"isPublished"`
}
