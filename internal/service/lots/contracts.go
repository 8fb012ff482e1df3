package lots

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error)
	Update(ctx context.Context, lot *domain.ParkingLot) error
	SetActive(ctx context.Context, id int64, active bool) error
	Archive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	BulkCreate(ctx context.Context, slots []*domain.Slot) error
	CountByLotAndStatus(ctx context.Context, lotID int64, status domain.SlotStatus) (int, error)
	DeleteByLot(ctx context.Context, lotID int64) error
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	AggregateByLot(ctx context.Context, lotID int64) (*domain.RatingSummary, error)
}

// ActivityRepository интерфейс журнала действий администраторов
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
