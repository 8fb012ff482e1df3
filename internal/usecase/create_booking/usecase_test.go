package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	slotRepo "github.com/parkease/parkease-backend/internal/infra/storage/slot"
)

type fakeBookingRepo struct {
	active  []*domain.Booking
	created *domain.Booking
	nextID  int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveBySlot(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.active, nil
}

type fakeSlotRepo struct {
	slots     map[int64]*domain.Slot
	available int
	updated   map[int64]domain.SlotStatus
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	if f.updated == nil {
		f.updated = map[int64]domain.SlotStatus{}
	}
	f.updated[id] = status
	return nil
}

func (f *fakeSlotRepo) CountByLotAndStatus(_ context.Context, _ int64, _ domain.SlotStatus) (int, error) {
	return f.available, nil
}

type fakeLotRepo struct {
	lots map[int64]*domain.ParkingLot
}

func (f *fakeLotRepo) GetByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	l, ok := f.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return l, nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Name: "Test Driver"}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newTestUseCase(bookings *fakeBookingRepo, slots *fakeSlotRepo, lots *fakeLotRepo, notifier *fakeNotifier, now time.Time) *UseCase {
	return NewUseCase(bookings, slots, lots, &fakeUserRepo{}, &fakeTxManager{}, notifier, nopLogger{}).
		WithTimeProvider(&fixedTime{now: now})
}

func defaultFixtures(totalSlots, available int) (*fakeSlotRepo, *fakeLotRepo) {
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, SlotNumber: "A-1", Status: domain.SlotStatusAvailable},
		},
		available: available,
	}
	lots := &fakeLotRepo{
		lots: map[int64]*domain.ParkingLot{
			1: {ID: 1, Name: "Central Plaza", PricePerHour: 100, TotalSlots: totalSlots},
		},
	}
	return slots, lots
}

func TestExecute_CreatesNearTermBooking(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slots, lots := defaultFixtures(10, 8)
	bookings := &fakeBookingRepo{}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(bookings, slots, lots, notifier, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		SlotID:    10,
		StartTime: now.Add(10 * time.Minute),
		EndTime:   now.Add(70 * time.Minute),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.InDelta(t, 100.00, resp.TotalPrice, 0.001)
	assert.Equal(t, "A-1", resp.SlotNumber)
	assert.Equal(t, "Central Plaza", resp.LotName)

	// Начало в пределах 30 минут — слот резервируется, события уходят
	assert.Equal(t, domain.SlotStatusReserved, slots.updated[10])
	assert.Equal(t, []string{"slot_update", "new_booking"}, notifier.events)
}

func TestExecute_FutureBookingLeavesSlotAvailable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slots, lots := defaultFixtures(10, 8)
	bookings := &fakeBookingRepo{}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(bookings, slots, lots, notifier, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		SlotID:    10,
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(3 * time.Hour),
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	// Бронирование далёкое — слот не трогаем, события не шлём
	assert.Empty(t, slots.updated)
	assert.Empty(t, notifier.events)
}

func TestExecute_GraceWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("start one minute in the past is accepted", func(t *testing.T) {
		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now.Add(-1 * time.Minute),
			EndTime:   now.Add(time.Hour),
		})
		require.NoError(t, err)
	})

	t.Run("start five minutes in the past is rejected", func(t *testing.T) {
		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now.Add(-5 * time.Minute),
			EndTime:   now.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrPastBooking)
	})
}

func TestExecute_AdvanceLimit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("six days ahead is accepted", func(t *testing.T) {
		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now.Add(6 * 24 * time.Hour),
			EndTime:   now.Add(6*24*time.Hour + time.Hour),
		})
		require.NoError(t, err)
	})

	t.Run("eight days ahead is rejected", func(t *testing.T) {
		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now.Add(8 * 24 * time.Hour),
			EndTime:   now.Add(8*24*time.Hour + time.Hour),
		})
		assert.ErrorIs(t, err, ErrAdvanceLimitExceeded)
	})
}

func TestExecute_InvalidRange(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slots, lots := defaultFixtures(10, 8)
	uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		SlotID:    10,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_OverlapConflict(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	existing := &domain.Booking{
		ID:        5,
		UserID:    2,
		SlotID:    10,
		StartTime: now.Add(15 * time.Minute),
		EndTime:   now.Add(45 * time.Minute),
		Status:    domain.BookingStatusActive,
	}

	t.Run("enclosing interval conflicts", func(t *testing.T) {
		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{active: []*domain.Booking{existing}}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now,
			EndTime:   now.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("back to back interval is accepted", func(t *testing.T) {
		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{active: []*domain.Booking{existing}}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now.Add(45 * time.Minute),
			EndTime:   now.Add(90 * time.Minute),
		})
		require.NoError(t, err)
	})

	t.Run("completed booking does not conflict", func(t *testing.T) {
		done := *existing
		done.Status = domain.BookingStatusCompleted

		slots, lots := defaultFixtures(10, 8)
		uc := newTestUseCase(&fakeBookingRepo{active: []*domain.Booking{&done}}, slots, lots, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    1,
			SlotID:    10,
			StartTime: now,
			EndTime:   now.Add(time.Hour),
		})
		require.NoError(t, err)
	})
}

func TestExecute_SurgePricing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 9 из 10 слотов заняты — занятость 0.9 > 0.8, ставка x1.5
	slots, lots := defaultFixtures(10, 1)
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, slots, lots, &fakeNotifier{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		SlotID:    10,
		StartTime: now.Add(10 * time.Minute),
		EndTime:   now.Add(70 * time.Minute),
	})

	require.NoError(t, err)
	assert.InDelta(t, 150.00, resp.TotalPrice, 0.001)
}

func TestExecute_SlotNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slots, lots := defaultFixtures(10, 8)
	uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		SlotID:    999,
		StartTime: now.Add(10 * time.Minute),
		EndTime:   now.Add(70 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slots, lots := defaultFixtures(10, 8)
	uc := newTestUseCase(&fakeBookingRepo{}, slots, lots, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    0,
		SlotID:    10,
		StartTime: now.Add(10 * time.Minute),
		EndTime:   now.Add(70 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
