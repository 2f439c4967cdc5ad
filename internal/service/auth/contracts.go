package auth

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, event *domain.EventLog) error
}

// TokenService интерфейс выпуска JWT токенов
type TokenService interface {
	Generate(userID int64, role string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
