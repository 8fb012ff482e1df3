package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	slotRepo "github.com/parkease/parkease-backend/internal/infra/storage/slot"
	"github.com/parkease/parkease-backend/internal/service/slots/models"
)

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) GetByLot(_ context.Context, lotID int64) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range f.slots {
		if s.LotID == lotID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	f.slots[id].Status = status
	return nil
}

type fakeLotRepo struct {
	lot *domain.ParkingLot
}

func (f *fakeLotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	return f.lot, nil
}

type fakeActivityRepo struct {
	entries []*domain.ActivityLog
}

func (f *fakeActivityRepo) Create(_ context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Emit(event string, _ interface{}) {
	f.events = append(f.events, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeSlotRepo, *fakeActivityRepo, *fakeNotifier) {
	slotStore := &fakeSlotRepo{
		slots: map[int64]*domain.Slot{
			10: {ID: 10, LotID: 1, SlotNumber: "A-1", Type: domain.SlotTypeNormal, Status: domain.SlotStatusAvailable},
		},
	}
	activityStore := &fakeActivityRepo{}
	notifier := &fakeNotifier{}
	svc := NewService(slotStore, &fakeLotRepo{lot: &domain.ParkingLot{ID: 1}}, activityStore, notifier, nopLogger{})
	return svc, slotStore, activityStore, notifier
}

func TestSetStatus_AdminOverride(t *testing.T) {
	svc, slots, activity, notifier := newTestService()

	resp, err := svc.SetStatus(context.Background(), 10,
		&models.UpdateSlotStatusRequest{Status: "occupied"},
		domain.Principal{ID: 9, Role: domain.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, "occupied", resp.Status)
	assert.Equal(t, domain.SlotStatusOccupied, slots.slots[10].Status)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, domain.ActionUpdateSlot, activity.entries[0].Action)
	assert.Equal(t, []string{"slot_update"}, notifier.events)
}

func TestSetStatus_NoopWhenUnchanged(t *testing.T) {
	svc, _, activity, notifier := newTestService()

	resp, err := svc.SetStatus(context.Background(), 10,
		&models.UpdateSlotStatusRequest{Status: "available"},
		domain.Principal{ID: 9, Role: domain.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, "available", resp.Status)
	assert.Empty(t, activity.entries)
	assert.Empty(t, notifier.events)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.SetStatus(context.Background(), 10,
		&models.UpdateSlotStatusRequest{Status: "broken"},
		domain.Principal{ID: 9, Role: domain.RoleAdmin})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatus_NonAdminDenied(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.SetStatus(context.Background(), 10,
		&models.UpdateSlotStatusRequest{Status: "occupied"},
		domain.Principal{ID: 5, Role: domain.RoleOwner})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByLot(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.ListByLot(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "A-1", resp.Slots[0].SlotNumber)
}
