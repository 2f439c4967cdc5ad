package catalog

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	Create(ctx context.Context, studio *domain.Studio) (*domain.Studio, error)
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	ListPublished(ctx context.Context, city *string) ([]*domain.Studio, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Studio, error)
	Update(ctx context.Context, studio *domain.Studio) error
	SetPublished(ctx context.Context, id int64, published bool) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	ListByStudio(ctx context.Context, studioID int64, activeOnly bool) ([]*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, event *domain.EventLog) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
