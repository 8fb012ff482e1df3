package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/pkg/dbmetrics"
	"github.com/parkease/parkease-backend/pkg/psqlbuilder"
)

// Repository репозиторий журнала действий администраторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала активности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activity_logs").
		Columns(
			"admin_id",
			"action",
			"details",
		).
		Values(
			entry.AdminID,
			entry.Action,
			entry.Details,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetRecent получает последние записи журнала с данными администратора
func (r *Repository) GetRecent(ctx context.Context, limit uint64) ([]*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.admin_id",
		"a.action",
		"a.details",
		"a.created_at",
		"u.name AS admin_name",
		"u.email AS admin_email",
	).
		From("activity_logs a").
		Join("users u ON u.id = a.admin_id").
		OrderBy("a.created_at DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ActivityLog, 0)
	for rows.Next() {
		var entry domain.ActivityLog
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.AdminID,
			&entry.Action,
			&entry.Details,
			&createdAt,
			&entry.AdminName,
			&entry.AdminEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRecent - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRecent - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
