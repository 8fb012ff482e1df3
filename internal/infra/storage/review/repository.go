package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/pkg/dbmetrics"
	"github.com/parkease/parkease-backend/pkg/psqlbuilder"
)

// Repository репозиторий для работы с отзывами (append-only)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"user_id",
			"lot_id",
			"rating",
			"comment",
			"issue_reported",
		).
		Values(
			review.UserID,
			review.LotID,
			review.Rating,
			review.Comment,
			review.IssueReported,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time

	return review, nil
}

// GetByLot получает отзывы парковки с именами авторов
func (r *Repository) GetByLot(ctx context.Context, lotID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.user_id",
		"r.lot_id",
		"r.rating",
		"r.comment",
		"r.issue_reported",
		"r.created_at",
		"u.name AS user_name",
	).
		From("reviews r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.lot_id": lotID}).
		OrderBy("r.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByLot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.LotID,
			&review.Rating,
			&review.Comment,
			&review.IssueReported,
			&createdAt,
			&review.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByLot - scan row: %v", ErrScanRow, err)
		}

		review.CreatedAt = createdAt.Time
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByLot - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// GetRecent получает последние отзывы по всем парковкам (для админ-панели)
func (r *Repository) GetRecent(ctx context.Context, limit uint64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.user_id",
		"r.lot_id",
		"r.rating",
		"r.comment",
		"r.issue_reported",
		"r.created_at",
		"u.name AS user_name",
		"l.name AS lot_name",
	).
		From("reviews r").
		Join("users u ON u.id = r.user_id").
		Join("parking_lots l ON l.id = r.lot_id").
		OrderBy("r.created_at DESC").
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

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.LotID,
			&review.Rating,
			&review.Comment,
			&review.IssueReported,
			&createdAt,
			&review.UserName,
			&review.LotName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRecent - scan row: %v", ErrScanRow, err)
		}

		review.CreatedAt = createdAt.Time
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRecent - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// AggregateByLot возвращает среднюю оценку и количество отзывов парковки
func (r *Repository) AggregateByLot(ctx context.Context, lotID int64) (*domain.RatingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(AVG(rating), 0)",
		"COUNT(*)",
	).
		From("reviews").
		Where(squirrel.Eq{"lot_id": lotID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByLot - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.RatingSummary
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.AverageRating,
		&summary.Count,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByLot - scan summary: %v", ErrScanRow, err)
	}

	return &summary, nil
}
