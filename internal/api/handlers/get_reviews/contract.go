package get_reviews

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/reviews/models"
)

type ReviewService interface {
	GetByLot(ctx context.Context, lotID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
