package get_lot_slots

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/slots/models"
)

type SlotService interface {
	ListByLot(ctx context.Context, lotID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
