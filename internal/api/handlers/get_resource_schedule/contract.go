package get_resource_schedule

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListTemplates(ctx context.Context, resourceID int64, actor domain.Actor) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
