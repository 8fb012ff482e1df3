package slots

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetByLot(ctx context.Context, lotID int64) ([]*domain.Slot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
}

// ActivityRepository интерфейс журнала действий администраторов
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error)
}

// Notifier интерфейс рассылки событий в реальном времени
type Notifier interface {
	Emit(event string, payload interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
