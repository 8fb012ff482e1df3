package admin

import (
	"context"
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error)
	Count(ctx context.Context, excludeArchived bool) (int, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Count(ctx context.Context) (int, error)
	CountByLotAndStatus(ctx context.Context, lotID int64, status domain.SlotStatus) (int, error)
	GetByStatus(ctx context.Context, status domain.SlotStatus) ([]*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int, error)
	GetActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Booking, error)
	AggregatePeakHours(ctx context.Context) ([]domain.PeakHour, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	SumSuccessful(ctx context.Context) (float64, error)
}

// ActivityRepository интерфейс журнала действий администраторов
type ActivityRepository interface {
	GetRecent(ctx context.Context, limit uint64) ([]*domain.ActivityLog, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetRecent(ctx context.Context, limit uint64) ([]*domain.Review, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
