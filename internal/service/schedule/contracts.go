package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	ListTemplates(ctx context.Context, resourceID int64) ([]*domain.AvailabilityTemplate, error)
	UpsertTemplate(ctx context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetExceptionForDate(ctx context.Context, resourceID int64, date time.Time) (*domain.AvailabilityException, error)
	CreateException(ctx context.Context, exc *domain.AvailabilityException) (*domain.AvailabilityException, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
