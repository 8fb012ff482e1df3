package lots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	"github.com/parkease/parkease-backend/internal/service/lots/models"
	"github.com/parkease/parkease-backend/pkg/ptr"
)

type fakeLotRepo struct {
	lots   map[int64]*domain.ParkingLot
	nextID int64
}

func (f *fakeLotRepo) Create(_ context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	f.nextID++
	created := *lot
	created.ID = f.nextID
	f.lots[created.ID] = &created
	return &created, nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	l, ok := f.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return l, nil
}

func (f *fakeLotRepo) List(_ context.Context, activeOnly bool) ([]*domain.ParkingLot, error) {
	var out []*domain.ParkingLot
	for _, l := range f.lots {
		if activeOnly && (!l.IsActive || l.IsArchived) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLotRepo) Update(_ context.Context, lot *domain.ParkingLot) error {
	f.lots[lot.ID] = lot
	return nil
}

func (f *fakeLotRepo) SetActive(_ context.Context, id int64, active bool) error {
	f.lots[id].IsActive = active
	return nil
}

func (f *fakeLotRepo) Archive(_ context.Context, id int64) error {
	f.lots[id].IsArchived = true
	f.lots[id].IsActive = false
	return nil
}

func (f *fakeLotRepo) Delete(_ context.Context, id int64) error {
	delete(f.lots, id)
	return nil
}

type fakeSlotRepo struct {
	created   []*domain.Slot
	available int
	deleted   []int64
}

func (f *fakeSlotRepo) BulkCreate(_ context.Context, slots []*domain.Slot) error {
	f.created = append(f.created, slots...)
	return nil
}

func (f *fakeSlotRepo) CountByLotAndStatus(_ context.Context, _ int64, _ domain.SlotStatus) (int, error) {
	return f.available, nil
}

func (f *fakeSlotRepo) DeleteByLot(_ context.Context, lotID int64) error {
	f.deleted = append(f.deleted, lotID)
	return nil
}

type fakeReviewRepo struct {
	summary domain.RatingSummary
}

func (f *fakeReviewRepo) AggregateByLot(_ context.Context, _ int64) (*domain.RatingSummary, error) {
	return &f.summary, nil
}

type fakeActivityRepo struct {
	entries []*domain.ActivityLog
}

func (f *fakeActivityRepo) Create(_ context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeLotRepo, *fakeSlotRepo, *fakeActivityRepo) {
	lotStore := &fakeLotRepo{lots: map[int64]*domain.ParkingLot{}}
	slotStore := &fakeSlotRepo{available: 5}
	activityStore := &fakeActivityRepo{}
	svc := NewService(lotStore, slotStore, &fakeReviewRepo{summary: domain.RatingSummary{AverageRating: 4.5, Count: 2}}, activityStore, nopLogger{})
	return svc, lotStore, slotStore, activityStore
}

func TestCreate_BulkCreatesNumberedSlots(t *testing.T) {
	svc, _, slots, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateLotRequest{
		Name:         "Central Plaza",
		Address:      "1 Main St",
		TotalSlots:   3,
		PricePerHour: 100,
	}, domain.Principal{ID: 5, Role: domain.RoleOwner})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.OwnerID)
	assert.True(t, resp.IsActive)

	require.Len(t, slots.created, 3)
	assert.Equal(t, "A-1", slots.created[0].SlotNumber)
	assert.Equal(t, "A-3", slots.created[2].SlotNumber)
	for _, s := range slots.created {
		assert.Equal(t, domain.SlotStatusAvailable, s.Status)
		assert.Equal(t, resp.ID, s.LotID)
	}
}

func TestCreate_DriverIsDenied(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateLotRequest{
		Name:         "Central Plaza",
		Address:      "1 Main St",
		TotalSlots:   3,
		PricePerHour: 100,
	}, domain.Principal{ID: 5, Role: domain.RoleDriver})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateLotRequest{
		Name:         "Central Plaza",
		Address:      "1 Main St",
		TotalSlots:   0,
		PricePerHour: 100,
	}, domain.Principal{ID: 5, Role: domain.RoleOwner})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGet_StatsReflectSurge(t *testing.T) {
	svc, lotStore, slotStore, _ := newTestService()
	lotStore.lots[1] = &domain.ParkingLot{ID: 1, Name: "Central Plaza", TotalSlots: 10, PricePerHour: 100, IsActive: true}

	// 1 свободный из 10 — занятость 0.9, surge x1.5
	slotStore.available = 1

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Stats)

	assert.Equal(t, 1, resp.Stats.AvailableSlots)
	assert.InDelta(t, 0.9, resp.Stats.OccupationRate, 0.001)
	assert.True(t, resp.Stats.IsSurge)
	assert.InDelta(t, 1.5, resp.Stats.PriceMultiplier, 0.001)
	assert.InDelta(t, 150.00, resp.Stats.CurrentPrice, 0.001)
	assert.InDelta(t, 4.5, resp.Stats.AverageRating, 0.001)
	assert.Equal(t, 2, resp.Stats.ReviewCount)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, lotStore, _, _ := newTestService()
	lotStore.lots[1] = &domain.ParkingLot{ID: 1, Name: "Old", OwnerID: 5, TotalSlots: 10, PricePerHour: 100}

	_, err := svc.Update(context.Background(), 1, &models.UpdateLotRequest{Name: ptr.Ptr("New")}, domain.Principal{ID: 7, Role: domain.RoleOwner})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateLotRequest{
		Name:         ptr.Ptr("New"),
		PricePerHour: ptr.Ptr(120.0),
	}, domain.Principal{ID: 5, Role: domain.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
	assert.InDelta(t, 120.0, resp.PricePerHour, 0.001)
}

func TestToggle_AdminOnlyAndLogged(t *testing.T) {
	svc, lotStore, _, activity := newTestService()
	lotStore.lots[1] = &domain.ParkingLot{ID: 1, Name: "Central Plaza", TotalSlots: 10, PricePerHour: 100, IsActive: true}

	_, err := svc.Toggle(context.Background(), 1, domain.Principal{ID: 5, Role: domain.RoleOwner})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Toggle(context.Background(), 1, domain.Principal{ID: 9, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, domain.ActionToggleStatus, activity.entries[0].Action)
	assert.Equal(t, int64(9), activity.entries[0].AdminID)
}

func TestArchiveLot_HidesFromActiveListing(t *testing.T) {
	svc, lotStore, _, activity := newTestService()
	lotStore.lots[1] = &domain.ParkingLot{ID: 1, Name: "Central Plaza", TotalSlots: 10, PricePerHour: 100, IsActive: true}

	err := svc.ArchiveLot(context.Background(), 1, domain.Principal{ID: 9, Role: domain.RoleAdmin})
	require.NoError(t, err)

	assert.True(t, lotStore.lots[1].IsArchived)
	assert.False(t, lotStore.lots[1].IsActive)
	require.Len(t, activity.entries, 1)
	assert.Equal(t, domain.ActionArchiveLot, activity.entries[0].Action)

	listing, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, listing.Lots)
}

func TestDelete_RemovesSlotsFirst(t *testing.T) {
	svc, lotStore, slotStore, _ := newTestService()
	lotStore.lots[1] = &domain.ParkingLot{ID: 1, Name: "Central Plaza", OwnerID: 5, TotalSlots: 10, PricePerHour: 100}

	err := svc.Delete(context.Background(), 1, domain.Principal{ID: 5, Role: domain.RoleOwner})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, slotStore.deleted)
	assert.NotContains(t, lotStore.lots, int64(1))
}
