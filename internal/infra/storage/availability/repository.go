package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Repository репозиторий недельного расписания и исключений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplateForWeekday получает запись расписания ресурса на день недели (0-6)
func (r *Repository) GetTemplateForWeekday(ctx context.Context, resourceID int64, dayOfWeek int) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_available",
		"created_at",
	).
		From("availability_template").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var tmpl domain.AvailabilityTemplate
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tmpl.ID,
		&tmpl.ResourceID,
		&tmpl.DayOfWeek,
		&tmpl.OpenTime,
		&tmpl.CloseTime,
		&tmpl.IsAvailable,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateForWeekday - scan template: %v", ErrScanRow, err)
	}

	tmpl.CreatedAt = createdAt.Time

	return &tmpl, nil
}

// ListTemplates получает все записи недельного расписания ресурса (по дням недели)
func (r *Repository) ListTemplates(ctx context.Context, resourceID int64) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_available",
		"created_at",
	).
		From("availability_template").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.AvailabilityTemplate, 0)
	for rows.Next() {
		var tmpl domain.AvailabilityTemplate
		var createdAt sql.NullTime

		if err := rows.Scan(
			&tmpl.ID,
			&tmpl.ResourceID,
			&tmpl.DayOfWeek,
			&tmpl.OpenTime,
			&tmpl.CloseTime,
			&tmpl.IsAvailable,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListTemplates - scan row: %v", ErrScanRow, err)
		}

		tmpl.CreatedAt = createdAt.Time
		templates = append(templates, &tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// UpsertTemplate создает или обновляет запись расписания
// Инвариант "не более одной записи на (resource_id, day_of_week)" обеспечивает
// уникальный индекс, конфликт разрешается обновлением
func (r *Repository) UpsertTemplate(ctx context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_template").
		Columns(
			"resource_id",
			"day_of_week",
			"open_time",
			"close_time",
			"is_available",
		).
		Values(
			tmpl.ResourceID,
			tmpl.DayOfWeek,
			tmpl.OpenTime,
			tmpl.CloseTime,
			tmpl.IsAvailable,
		).
		Suffix(`ON CONFLICT (resource_id, day_of_week) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_available = EXCLUDED.is_available
		RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tmpl.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertTemplate - execute insert: %v", ErrExecQuery, err)
	}

	tmpl.CreatedAt = createdAt.Time

	return tmpl, nil
}

// GetExceptionForDate получает исключение из расписания на конкретную дату
func (r *Repository) GetExceptionForDate(ctx context.Context, resourceID int64, date time.Time) (*domain.AvailabilityException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"date",
		"start_time",
		"end_time",
		"is_available",
		"reason",
		"override_price",
		"created_at",
	).
		From("availability_exception").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionForDate - build select query: %v", ErrBuildQuery, err)
	}

	var exc domain.AvailabilityException
	var createdAt sql.NullTime
	// NULL время сканируем в значение: TimeString.Scan маппит NULL в пустую строку
	var startTime, endTime types.TimeString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID,
		&exc.ResourceID,
		&exc.Date,
		&startTime,
		&endTime,
		&exc.IsAvailable,
		&exc.Reason,
		&exc.OverridePrice,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionForDate - scan exception: %v", ErrScanRow, err)
	}

	if !startTime.IsZero() {
		exc.StartTime = &startTime
	}
	if !endTime.IsZero() {
		exc.EndTime = &endTime
	}
	exc.CreatedAt = createdAt.Time

	return &exc, nil
}

// CreateException создает исключение из расписания на дату
func (r *Repository) CreateException(ctx context.Context, exc *domain.AvailabilityException) (*domain.AvailabilityException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_exception").
		Columns(
			"resource_id",
			"date",
			"start_time",
			"end_time",
			"is_available",
			"reason",
			"override_price",
		).
		Values(
			exc.ResourceID,
			exc.Date,
			exc.StartTime,
			exc.EndTime,
			exc.IsAvailable,
			exc.Reason,
			exc.OverridePrice,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time

	return exc, nil
}
