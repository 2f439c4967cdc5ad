package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

var resourceColumns = []string{
	"id",
	"studio_id",
	"name",
	"resource_type",
	"description",
	"base_price_per_hour",
	"max_occupancy",
	"is_active",
	"created_at",
}

// Repository репозиторий для работы с ресурсами студий
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый ресурс
func (r *Repository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"studio_id",
			"name",
			"resource_type",
			"description",
			"base_price_per_hour",
			"max_occupancy",
			"is_active",
		).
		Values(
			resource.StudioID,
			resource.Name,
			resource.ResourceType,
			resource.Description,
			resource.BasePricePerHour,
			resource.MaxOccupancy,
			resource.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&resource.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	resource.CreatedAt = createdAt.Time

	return resource, nil
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	resource, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	return resource, nil
}

// ListByStudio получает ресурсы студии
// Если activeOnly=true, возвращает только активные ресурсы
func (r *Repository) ListByStudio(ctx context.Context, studioID int64, activeOnly bool) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"studio_id": studioID}).
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStudio - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStudio - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStudio - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStudio - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// Update обновляет редактируемые поля ресурса
func (r *Repository) Update(ctx context.Context, resource *domain.Resource) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("name", resource.Name).
		Set("resource_type", resource.ResourceType).
		Set("description", resource.Description).
		Set("base_price_per_hour", resource.BasePricePerHour).
		Set("max_occupancy", resource.MaxOccupancy).
		Set("is_active", resource.IsActive).
		Where(squirrel.Eq{"id": resource.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var resource domain.Resource
	var createdAt sql.NullTime

	err := row.Scan(
		&resource.ID,
		&resource.StudioID,
		&resource.Name,
		&resource.ResourceType,
		&resource.Description,
		&resource.BasePricePerHour,
		&resource.MaxOccupancy,
		&resource.IsActive,
		&createdAt,
	)

	if err != nil {
		return nil, err
	}

	resource.CreatedAt = createdAt.Time

	return &resource, nil
}
