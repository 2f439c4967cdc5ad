package studio

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

var studioColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"address",
	"city",
	"phone",
	"is_active",
	"is_published",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со студиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория студий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую студию
func (r *Repository) Create(ctx context.Context, studio *domain.Studio) (*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studios").
		Columns(
			"owner_id",
			"name",
			"description",
			"address",
			"city",
			"phone",
			"is_active",
			"is_published",
		).
		Values(
			studio.OwnerID,
			studio.Name,
			studio.Description,
			studio.Address,
			studio.City,
			studio.Phone,
			studio.IsActive,
			studio.IsPublished,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&studio.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	studio.CreatedAt = createdAt.Time
	studio.UpdatedAt = updatedAt.Time

	return studio, nil
}

// GetByID получает студию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(studioColumns...).
		From("studios").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	studio, err := scanStudio(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStudioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan studio: %v", ErrScanRow, err)
	}

	return studio, nil
}

// ListPublished получает опубликованные активные студии (каталог для клиентов)
func (r *Repository) ListPublished(ctx context.Context, city *string) ([]*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(studioColumns...).
		From("studios").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"is_published": true}).
		OrderBy("name ASC")

	if city != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city": *city})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublished - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStudios(rows)
}

// ListByOwner получает все студии владельца, включая неопубликованные
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(studioColumns...).
		From("studios").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStudios(rows)
}

// GetOwnedStudioIDs получает ID всех студий владельца
func (r *Repository) GetOwnedStudioIDs(ctx context.Context, ownerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("studios").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOwnedStudioIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOwnedStudioIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetOwnedStudioIDs - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOwnedStudioIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Update обновляет редактируемые поля студии
func (r *Repository) Update(ctx context.Context, studio *domain.Studio) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("studios").
		Set("name", studio.Name).
		Set("description", studio.Description).
		Set("address", studio.Address).
		Set("city", studio.City).
		Set("phone", studio.Phone).
		Set("is_active", studio.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": studio.ID}).
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
		return ErrStudioNotFound
	}

	return nil
}

// SetPublished переключает видимость студии в каталоге
func (r *Repository) SetPublished(ctx context.Context, id int64, published bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("studios").
		Set("is_published", published).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPublished - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPublished - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPublished - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStudioNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudio(row rowScanner) (*domain.Studio, error) {
	var studio domain.Studio
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&studio.ID,
		&studio.OwnerID,
		&studio.Name,
		&studio.Description,
		&studio.Address,
		&studio.City,
		&studio.Phone,
		&studio.IsActive,
		&studio.IsPublished,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	studio.CreatedAt = createdAt.Time
	studio.UpdatedAt = updatedAt.Time

	return &studio, nil
}

func scanStudios(rows *sql.Rows) ([]*domain.Studio, error) {
	studios := make([]*domain.Studio, 0)
	for rows.Next() {
		studio, err := scanStudio(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrScanRow, err)
		}
		studios = append(studios, studio)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return studios, nil
}
