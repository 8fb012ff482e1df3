package bookings

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
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
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

func TestGetUserBookings_LazyExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 1, SlotID: 10, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: domain.BookingStatusActive},
			2: {ID: 2, UserID: 1, SlotID: 11, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: domain.BookingStatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusOccupied},
			11: {ID: 11, LotID: 1, Status: domain.SlotStatusOccupied},
		},
	}
	notifier := &fakeNotifier{}

	svc := NewService(bookings, slots, notifier, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	resp, err := svc.GetUserBookings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	// Просроченное бронирование завершено, слот освобождён
	assert.Equal(t, domain.BookingStatusCompleted, bookings.bookings[1].Status)
	assert.Equal(t, domain.SlotStatusAvailable, slots.slots[10].Status)

	// Текущее бронирование не тронуто
	assert.Equal(t, domain.BookingStatusActive, bookings.bookings[2].Status)
	assert.Equal(t, domain.SlotStatusOccupied, slots.slots[11].Status)

	assert.Equal(t, []string{"slot_update"}, notifier.events)

	// В выдаче просроченное бронирование уже со статусом completed
	statuses := map[int64]string{}
	for _, b := range resp.Bookings {
		statuses[b.ID] = b.Status
	}
	assert.Equal(t, "completed", statuses[1])
	assert.Equal(t, "active", statuses[2])
}

func TestGetByID_AccessControl(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 1, SlotID: 10, StartTime: now, EndTime: now.Add(time.Hour), Status: domain.BookingStatusActive},
		},
	}
	svc := NewService(bookings, &fakeSlotRepo{}, &fakeNotifier{}, nopLogger{})

	t.Run("owner can read", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, domain.Principal{ID: 1, Role: domain.RoleDriver})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, domain.Principal{ID: 99, Role: domain.RoleAdmin})
		require.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, domain.Principal{ID: 2, Role: domain.RoleDriver})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, domain.Principal{ID: 1, Role: domain.RoleDriver})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestEnd_CompletesAndReleasesSlot(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 1, SlotID: 10, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: domain.BookingStatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, Status: domain.SlotStatusOccupied},
		},
	}
	notifier := &fakeNotifier{}

	svc := NewService(bookings, slots, notifier, nopLogger{}).WithTimeProvider(&fixedTime{now: now})

	resp, err := svc.End(context.Background(), 1, domain.Principal{ID: 1, Role: domain.RoleDriver})
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, domain.SlotStatusAvailable, slots.slots[10].Status)
	assert.Equal(t, []string{"slot_update"}, notifier.events)

	// Повторное завершение отвергается
	_, err = svc.End(context.Background(), 1, domain.Principal{ID: 1, Role: domain.RoleDriver})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}
