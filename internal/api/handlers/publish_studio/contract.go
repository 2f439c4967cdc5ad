package publish_studio

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type CatalogService interface {
	SetStudioPublished(ctx context.Context, id int64, published bool, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
