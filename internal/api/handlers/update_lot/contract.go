package update_lot

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/lots/models"
)

type LotService interface {
	Update(ctx context.Context, id int64, req *models.UpdateLotRequest, principal domain.Principal) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
