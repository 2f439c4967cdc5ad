package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByResourceAndDate получает бронирования ресурса на дату
	// Внутри транзакции строки блокируются FOR UPDATE
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

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, event *domain.EventLog) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
