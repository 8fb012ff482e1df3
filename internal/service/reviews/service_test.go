package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	"github.com/parkease/parkease-backend/internal/service/reviews/models"
)

type fakeReviewRepo struct {
	reviews []*domain.Review
	nextID  int64
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	f.nextID++
	created := *review
	created.ID = f.nextID
	f.reviews = append(f.reviews, &created)
	return &created, nil
}

func (f *fakeReviewRepo) GetByLot(_ context.Context, lotID int64) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range f.reviews {
		if r.LotID == lotID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeLotRepo struct {
	lots map[int64]*domain.ParkingLot
}

func (f *fakeLotRepo) GetByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return lot, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeReviewRepo, *fakeLotRepo) {
	reviewStore := &fakeReviewRepo{}
	lotStore := &fakeLotRepo{lots: map[int64]*domain.ParkingLot{
		1: {ID: 1, Name: "Central Plaza", TotalSlots: 10, PricePerHour: 100},
	}}
	return NewService(reviewStore, lotStore, nopLogger{}), reviewStore, lotStore
}

func TestCreate_Success(t *testing.T) {
	svc, store, _ := newTestService()

	resp, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{
		Rating:  4,
		Comment: "Удобный заезд, но тесные места",
	}, domain.Principal{ID: 5, Role: domain.RoleDriver})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.UserID)
	assert.Equal(t, int64(1), resp.LotID)
	assert.Equal(t, 4, resp.Rating)
	require.Len(t, store.reviews, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc, store, _ := newTestService()
	principal := domain.Principal{ID: 5, Role: domain.RoleDriver}

	tests := []struct {
		name    string
		lotID   int64
		req     *models.CreateReviewRequest
		wantErr error
	}{
		{
			name:    "rating below range",
			lotID:   1,
			req:     &models.CreateReviewRequest{Rating: 0, Comment: "ok"},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "rating above range",
			lotID:   1,
			req:     &models.CreateReviewRequest{Rating: 6, Comment: "ok"},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "blank comment",
			lotID:   1,
			req:     &models.CreateReviewRequest{Rating: 3, Comment: "   "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown lot",
			lotID:   99,
			req:     &models.CreateReviewRequest{Rating: 3, Comment: "ok"},
			wantErr: ErrLotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.lotID, tt.req, principal)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, store.reviews)
}

func TestGetByLot(t *testing.T) {
	svc, _, _ := newTestService()

	for _, rating := range []int{5, 3} {
		_, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{
			Rating:  rating,
			Comment: "ok",
		}, domain.Principal{ID: 5, Role: domain.RoleDriver})
		require.NoError(t, err)
	}

	resp, err := svc.GetByLot(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 2)

	_, err = svc.GetByLot(context.Background(), 99)
	assert.ErrorIs(t, err, ErrLotNotFound)
}
