package upsert_schedule

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertTemplate(ctx context.Context, req *models.UpsertTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
