package update_slot_status

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/slots/models"
)

type SlotService interface {
	SetStatus(ctx context.Context, slotID int64, req *models.UpdateSlotStatusRequest, principal domain.Principal) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
