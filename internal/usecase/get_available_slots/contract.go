package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByResourceAndDate получает бронирования ресурса на дату
	// onlyBlocking=true отбрасывает отклонённые и отменённые
	GetByResourceAndDate(ctx context.Context, resourceID int64, date time.Time, onlyBlocking bool) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	GetTemplateForWeekday(ctx context.Context, resourceID int64, dayOfWeek int) (*domain.AvailabilityTemplate, error)
	GetExceptionForDate(ctx context.Context, resourceID int64, date time.Time) (*domain.AvailabilityException, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
