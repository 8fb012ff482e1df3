package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/admin/models"
)

type fakeLotRepo struct {
	lots []*domain.ParkingLot
}

func (f *fakeLotRepo) List(_ context.Context, _ bool) ([]*domain.ParkingLot, error) {
	return f.lots, nil
}

func (f *fakeLotRepo) Count(_ context.Context, _ bool) (int, error) {
	return len(f.lots), nil
}

type fakeSlotRepo struct {
	availableByLot map[int64]int
	occupied       []*domain.Slot
	total          int
}

func (f *fakeSlotRepo) Count(_ context.Context) (int, error) {
	return f.total, nil
}

func (f *fakeSlotRepo) CountByLotAndStatus(_ context.Context, lotID int64, _ domain.SlotStatus) (int, error) {
	return f.availableByLot[lotID], nil
}

func (f *fakeSlotRepo) GetByStatus(_ context.Context, _ domain.SlotStatus) ([]*domain.Slot, error) {
	return f.occupied, nil
}

type fakeBookingRepo struct {
	activeCount  int
	activeBySlot map[int64][]*domain.Booking
	peaks        []domain.PeakHour
}

func (f *fakeBookingRepo) CountByStatus(_ context.Context, _ domain.BookingStatus) (int, error) {
	return f.activeCount, nil
}

func (f *fakeBookingRepo) GetActiveBySlot(_ context.Context, slotID int64) ([]*domain.Booking, error) {
	return f.activeBySlot[slotID], nil
}

func (f *fakeBookingRepo) AggregatePeakHours(_ context.Context) ([]domain.PeakHour, error) {
	return f.peaks, nil
}

type fakePaymentRepo struct {
	revenue float64
}

func (f *fakePaymentRepo) SumSuccessful(_ context.Context) (float64, error) {
	return f.revenue, nil
}

type fakeActivityRepo struct {
	logs []*domain.ActivityLog
}

func (f *fakeActivityRepo) GetRecent(_ context.Context, _ uint64) ([]*domain.ActivityLog, error) {
	return f.logs, nil
}

type fakeReviewRepo struct {
	reviews []*domain.Review
}

func (f *fakeReviewRepo) GetRecent(_ context.Context, _ uint64) ([]*domain.Review, error) {
	return f.reviews, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestDashboardStats(t *testing.T) {
	svc := NewService(
		&fakeLotRepo{lots: []*domain.ParkingLot{{ID: 1}, {ID: 2}}},
		&fakeSlotRepo{total: 25},
		&fakeBookingRepo{activeCount: 7},
		&fakePaymentRepo{revenue: 12500.456},
		&fakeActivityRepo{},
		&fakeReviewRepo{},
		nopLogger{},
	)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalLots)
	assert.Equal(t, 25, stats.TotalSlots)
	assert.Equal(t, 7, stats.ActiveBookings)
	assert.InDelta(t, 12500.46, stats.Revenue, 0.001)
}

func TestSystemAlerts_OccupancyThresholds(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	svc := NewService(
		&fakeLotRepo{lots: []*domain.ParkingLot{
			{ID: 1, Name: "Critical", TotalSlots: 100},
			{ID: 2, Name: "Warning", TotalSlots: 100},
			{ID: 3, Name: "Calm", TotalSlots: 100},
		}},
		&fakeSlotRepo{availableByLot: map[int64]int{
			1: 10, // занятость 0.90
			2: 30, // занятость 0.70
			3: 50, // занятость 0.50
		}},
		&fakeBookingRepo{activeBySlot: map[int64][]*domain.Booking{}},
		&fakePaymentRepo{},
		&fakeActivityRepo{},
		&fakeReviewRepo{},
		nopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	resp, err := svc.SystemAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Alerts, 2)

	assert.Equal(t, domain.AlertHighOccupancy, resp.Alerts[0].Type)
	assert.Equal(t, "critical", resp.Alerts[0].Severity)
	assert.Contains(t, resp.Alerts[0].Message, "Critical")

	assert.Equal(t, "warning", resp.Alerts[1].Severity)
	assert.Contains(t, resp.Alerts[1].Message, "Warning")
}

func TestSystemAlerts_SlotMismatch(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	svc := NewService(
		&fakeLotRepo{},
		&fakeSlotRepo{
			occupied: []*domain.Slot{
				{ID: 10, LotID: 1, SlotNumber: "A-1", Status: domain.SlotStatusOccupied},
				{ID: 11, LotID: 1, SlotNumber: "A-2", Status: domain.SlotStatusOccupied},
			},
		},
		&fakeBookingRepo{activeBySlot: map[int64][]*domain.Booking{
			10: {{ID: 1, SlotID: 10, Status: domain.BookingStatusActive}},
			// Слот 11 занят без активного бронирования
		}},
		&fakePaymentRepo{},
		&fakeActivityRepo{},
		&fakeReviewRepo{},
		nopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	resp, err := svc.SystemAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Alerts, 1)

	assert.Equal(t, domain.AlertSlotMismatch, resp.Alerts[0].Type)
	assert.Contains(t, resp.Alerts[0].Message, "A-2")
}

func TestPeakHours_Classification(t *testing.T) {
	svc := NewService(
		&fakeLotRepo{},
		&fakeSlotRepo{},
		&fakeBookingRepo{peaks: []domain.PeakHour{
			{Hour: 9, Count: 10},
			{Hour: 12, Count: 5},
			{Hour: 23, Count: 1},
		}},
		&fakePaymentRepo{},
		&fakeActivityRepo{},
		&fakeReviewRepo{},
		nopLogger{},
	)

	resp, err := svc.PeakHours(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Hours, 3)

	assert.Equal(t, models.LoadHigh, resp.Hours[0].Level)
	assert.Equal(t, models.LoadMedium, resp.Hours[1].Level)
	assert.Equal(t, models.LoadLow, resp.Hours[2].Level)
}
