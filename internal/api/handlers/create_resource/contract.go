package create_resource

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
