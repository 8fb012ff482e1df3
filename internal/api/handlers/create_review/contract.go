package create_review

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, lotID int64, req *models.CreateReviewRequest, principal domain.Principal) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
