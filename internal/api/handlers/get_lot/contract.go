package get_lot

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/lots/models"
)

type LotService interface {
	Get(ctx context.Context, id int64) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
