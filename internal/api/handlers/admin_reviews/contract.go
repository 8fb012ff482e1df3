package admin_reviews

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/reviews/models"
)

type AdminService interface {
	RecentReviews(ctx context.Context) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
