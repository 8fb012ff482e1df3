package create_lot

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/lots/models"
)

type LotService interface {
	Create(ctx context.Context, req *models.CreateLotRequest, principal domain.Principal) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
