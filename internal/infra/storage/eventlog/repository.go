package eventlog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

// Repository append-only репозиторий журнала событий
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала событий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал событий
// Запись попадает в ту же транзакцию, что и изменение бизнес-сущности
func (r *Repository) Append(ctx context.Context, event *domain.EventLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_log").
		Columns(
			"user_id",
			"booking_id",
			"studio_id",
			"event_type",
			"description",
		).
		Values(
			event.UserID,
			event.BookingID,
			event.StudioID,
			event.EventType,
			event.Description,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
