package auto_release

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	failUpdateFor int64 // ID бронирования, обновление которого падает
}

func (f *fakeBookingRepo) GetExpired(_ context.Context, now time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.IsActive() && b.IsExpired(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetActiveCovering(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.IsActive() && !b.StartTime.After(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if id == f.failUpdateFor {
		return errors.New("storage unavailable")
	}
	f.bookings[id].Status = status
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	return f.slots[id], nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	f.slots[id].Status = status
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Emit(event string, _ interface{}) {
	f.events = append(f.events, event)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_ReleasesExpiredBookings(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, SlotID: 10, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: domain.BookingStatusActive},
			2: {ID: 2, SlotID: 11, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: domain.BookingStatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusOccupied},
			11: {ID: 11, LotID: 1, Status: domain.SlotStatusOccupied},
		},
	}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, slots, notifier, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, 0, result.FailedCount)

	assert.Equal(t, domain.BookingStatusCompleted, bookings.bookings[1].Status)
	assert.Equal(t, domain.SlotStatusAvailable, slots.slots[10].Status)

	// Активное бронирование не тронуто
	assert.Equal(t, domain.BookingStatusActive, bookings.bookings[2].Status)
	assert.Equal(t, domain.SlotStatusOccupied, slots.slots[11].Status)

	assert.Contains(t, notifier.events, "slot_update")
}

func TestExecute_SecondRunIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, SlotID: 10, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: domain.BookingStatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusOccupied},
		},
	}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, slots, notifier, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ReleasedCount)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ReleasedCount)
	assert.Equal(t, 0, second.ActivatedCount)

	// События только от первого прохода
	assert.Len(t, notifier.events, 1)
}

func TestExecute_FailureOnOneItemDoesNotStopSweep(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, SlotID: 10, StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-2 * time.Hour), Status: domain.BookingStatusActive},
			2: {ID: 2, SlotID: 11, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: domain.BookingStatusActive},
		},
		failUpdateFor: 1,
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusOccupied},
			11: {ID: 11, LotID: 1, Status: domain.SlotStatusOccupied},
		},
	}

	uc := NewUseCase(bookings, slots, &fakeNotifier{}, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, 1, result.FailedCount)

	// Второе бронирование обработано несмотря на сбой первого
	assert.Equal(t, domain.BookingStatusCompleted, bookings.bookings[2].Status)
	assert.Equal(t, domain.SlotStatusAvailable, slots.slots[11].Status)
}

func TestExecute_ActivatesUpcomingBookings(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			// Стартует через 20 минут — внутри окна резервирования
			1: {ID: 1, SlotID: 10, StartTime: now.Add(20 * time.Minute), EndTime: now.Add(80 * time.Minute), Status: domain.BookingStatusActive},
			// Стартует через 2 часа — вне окна
			2: {ID: 2, SlotID: 11, StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour), Status: domain.BookingStatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusAvailable},
			11: {ID: 11, LotID: 1, Status: domain.SlotStatusAvailable},
		},
	}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, slots, notifier, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ActivatedCount)
	assert.Equal(t, domain.SlotStatusReserved, slots.slots[10].Status)
	assert.Equal(t, domain.SlotStatusAvailable, slots.slots[11].Status)
	assert.Equal(t, []string{"slot_update"}, notifier.events)
}

func TestExecute_DoesNotTouchOccupiedSlotOnActivation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, SlotID: 10, StartTime: now.Add(-10 * time.Minute), EndTime: now.Add(50 * time.Minute), Status: domain.BookingStatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusOccupied},
		},
	}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, slots, notifier, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.ActivatedCount)
	assert.Equal(t, domain.SlotStatusOccupied, slots.slots[10].Status)
	assert.Empty(t, notifier.events)
}
