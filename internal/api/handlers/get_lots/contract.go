package get_lots

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/lots/models"
)

type LotService interface {
	List(ctx context.Context, activeOnly bool) (*models.LotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
