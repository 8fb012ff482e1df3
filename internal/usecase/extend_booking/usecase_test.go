package extend_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	bookingRepo "github.com/parkease/parkease-backend/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	active   []*domain.Booking
	updated  bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetActiveBySlot(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.active, nil
}

func (f *fakeBookingRepo) UpdateEndTimeAndPrice(_ context.Context, id int64, endTime time.Time, totalPrice float64) error {
	b := f.bookings[id]
	b.EndTime = endTime
	b.TotalPrice = totalPrice
	f.updated = true
	return nil
}

type fakeSlotRepo struct {
	slot      *domain.Slot
	available int
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	return f.slot, nil
}

func (f *fakeSlotRepo) CountByLotAndStatus(_ context.Context, _ int64, _ domain.SlotStatus) (int, error) {
	return f.available, nil
}

type fakeLotRepo struct {
	lot *domain.ParkingLot
}

func (f *fakeLotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	return f.lot, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fixtures(now time.Time) (*fakeBookingRepo, *fakeSlotRepo, *fakeLotRepo) {
	booking := &domain.Booking{
		ID:         7,
		UserID:     1,
		SlotID:     10,
		StartTime:  now.Add(-30 * time.Minute),
		EndTime:    now.Add(30 * time.Minute),
		TotalPrice: 100,
		Status:     domain.BookingStatusActive,
	}

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{7: booking},
		active:   []*domain.Booking{booking},
	}
	slots := &fakeSlotRepo{
		slot:      &domain.Slot{ID: 10, LotID: 1, SlotNumber: "A-1", Status: domain.SlotStatusOccupied},
		available: 8,
	}
	lots := &fakeLotRepo{
		lot: &domain.ParkingLot{ID: 1, Name: "Central Plaza", PricePerHour: 100, TotalSlots: 10},
	}
	return bookings, slots, lots
}

func TestExecute_ExtendsAndReprices(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	// Было 1 час за 100, продлеваем до 2 часов — полный пересчёт
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  7,
		UserID:     1,
		NewEndTime: now.Add(90 * time.Minute),
	})

	require.NoError(t, err)
	assert.True(t, bookings.updated)
	assert.Equal(t, now.Add(90*time.Minute), resp.EndTime)
	assert.InDelta(t, 200.00, resp.TotalPrice, 0.001)
}

func TestExecute_RepricesAtSurgeRate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)
	slots.available = 1 // занятость 0.9 — действует surge x1.5

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  7,
		UserID:     1,
		NewEndTime: now.Add(90 * time.Minute),
	})

	require.NoError(t, err)
	assert.InDelta(t, 300.00, resp.TotalPrice, 0.001)
}

func TestExecute_NotOwner(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  7,
		UserID:     99,
		NewEndTime: now.Add(90 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestExecute_BookingNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  404,
		UserID:     1,
		NewEndTime: now.Add(90 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NotActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)
	bookings.bookings[7].Status = domain.BookingStatusCompleted

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  7,
		UserID:     1,
		NewEndTime: now.Add(90 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestExecute_NewEndNotLater(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  7,
		UserID:     1,
		NewEndTime: now.Add(30 * time.Minute), // совпадает с текущим окончанием
	})
	assert.ErrorIs(t, err, ErrInvalidEndTime)
}

func TestExecute_ConflictWithNextBooking(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings, slots, lots := fixtures(now)

	// Следующее бронирование стартует сразу после текущего окончания
	next := &domain.Booking{
		ID:        8,
		UserID:    2,
		SlotID:    10,
		StartTime: now.Add(30 * time.Minute),
		EndTime:   now.Add(2 * time.Hour),
		Status:    domain.BookingStatusActive,
	}
	bookings.active = append(bookings.active, next)

	uc := NewUseCase(bookings, slots, lots, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  7,
		UserID:     1,
		NewEndTime: now.Add(90 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}
