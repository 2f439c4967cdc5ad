package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_available_slots"
)

type UseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
