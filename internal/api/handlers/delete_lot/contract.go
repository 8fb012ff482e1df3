package delete_lot

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
)

type LotService interface {
	Delete(ctx context.Context, id int64, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
