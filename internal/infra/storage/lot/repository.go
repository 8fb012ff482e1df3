package lot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/pkg/dbmetrics"
	"github.com/parkease/parkease-backend/pkg/psqlbuilder"
)

var lotColumns = []string{
	"id",
	"name",
	"address",
	"image",
	"latitude",
	"longitude",
	"total_slots",
	"price_per_hour",
	"owner_id",
	"is_active",
	"is_archived",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую парковку
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_lots").
		Columns(
			"name",
			"address",
			"image",
			"latitude",
			"longitude",
			"total_slots",
			"price_per_hour",
			"owner_id",
			"is_active",
			"is_archived",
		).
		Values(
			lot.Name,
			lot.Address,
			lot.Image,
			lot.Latitude,
			lot.Longitude,
			lot.TotalSlots,
			lot.PricePerHour,
			lot.OwnerID,
			lot.IsActive,
			lot.IsArchived,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	return lot, nil
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lot, err := r.scanLotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lot: %v", ErrScanRow, err)
	}

	return lot, nil
}

// List получает парковки.
// activeOnly=true — только активные и не архивированные (публичный каталог);
// activeOnly=false — все, включая архивные (административный список)
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		OrderBy("created_at DESC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{
			"is_active":   true,
			"is_archived": false,
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLots(rows)
}

// Update обновляет изменяемые поля парковки
func (r *Repository) Update(ctx context.Context, lot *domain.ParkingLot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("name", lot.Name).
		Set("address", lot.Address).
		Set("image", lot.Image).
		Set("latitude", lot.Latitude).
		Set("longitude", lot.Longitude).
		Set("price_per_hour", lot.PricePerHour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lot.ID}).
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
		return ErrLotNotFound
	}

	return nil
}

// SetActive включает/выключает парковку
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLotNotFound
	}

	return nil
}

// Archive архивирует парковку (мягкое удаление): парковка исключается из
// публичного каталога, но сохраняется для истории
func (r *Repository) Archive(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("is_archived", true).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Archive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Archive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Archive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLotNotFound
	}

	return nil
}

// Delete удаляет парковку (физическое удаление; слоты удаляются отдельно
// в той же транзакции)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLotNotFound
	}

	return nil
}

// Count подсчитывает парковки (опционально без архивных)
func (r *Repository) Count(ctx context.Context, excludeArchived bool) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From("parking_lots")
	if excludeArchived {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_archived": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) scanLotRow(row *sql.Row) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&lot.ID,
		&lot.Name,
		&lot.Address,
		&lot.Image,
		&lot.Latitude,
		&lot.Longitude,
		&lot.TotalSlots,
		&lot.PricePerHour,
		&lot.OwnerID,
		&lot.IsActive,
		&lot.IsArchived,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	return &lot, nil
}

// scanLots сканирует результаты запроса в слайс парковок
func (r *Repository) scanLots(rows *sql.Rows) ([]*domain.ParkingLot, error) {
	lots := make([]*domain.ParkingLot, 0)

	for rows.Next() {
		var lot domain.ParkingLot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&lot.ID,
			&lot.Name,
			&lot.Address,
			&lot.Image,
			&lot.Latitude,
			&lot.Longitude,
			&lot.TotalSlots,
			&lot.PricePerHour,
			&lot.OwnerID,
			&lot.IsActive,
			&lot.IsArchived,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanLots - scan row: %v", ErrScanRow, err)
		}

		lot.CreatedAt = createdAt.Time
		lot.UpdatedAt = updatedAt.Time

		lots = append(lots, &lot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLots - rows error: %v", ErrScanRow, err)
	}

	return lots, nil
}
