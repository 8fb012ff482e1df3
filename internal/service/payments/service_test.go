package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkease/parkease-backend/internal/domain"
	bookingRepo "github.com/parkease/parkease-backend/internal/infra/storage/booking"
)

type fakePaymentRepo struct {
	payments []*domain.Payment
	nextID   int64
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	f.nextID++
	created := *payment
	created.ID = f.nextID
	f.payments = append(f.payments, &created)
	return &created, nil
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakePaymentRepo) {
	now := time.Now()
	bookingStore := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:         1,
			UserID:     5,
			SlotID:     10,
			StartTime:  now,
			EndTime:    now.Add(2 * time.Hour),
			TotalPrice: 200.00,
			Status:     domain.BookingStatusActive,
		},
	}}
	paymentStore := &fakePaymentRepo{}
	return NewService(paymentStore, bookingStore, nopLogger{}), paymentStore
}

func TestPay_Success(t *testing.T) {
	svc, store := newTestService()

	resp, err := svc.Pay(context.Background(), 1, domain.Principal{ID: 5, Role: domain.RoleDriver})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.InDelta(t, 200.00, resp.Amount, 0.001)
	assert.Equal(t, string(domain.PaymentStatusSuccess), resp.PaymentStatus)
	assert.Equal(t, domain.PaymentModeSimulated, resp.PaymentMode)
	require.Len(t, store.payments, 1)
}

func TestPay_RepeatedPaymentRejected(t *testing.T) {
	svc, _ := newTestService()
	principal := domain.Principal{ID: 5, Role: domain.RoleDriver}

	_, err := svc.Pay(context.Background(), 1, principal)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), 1, principal)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestPay_AccessControl(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Pay(context.Background(), 1, domain.Principal{ID: 7, Role: domain.RoleDriver})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Pay(context.Background(), 1, domain.Principal{ID: 9, Role: domain.RoleAdmin})
	assert.NoError(t, err)
}

func TestPay_BookingNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Pay(context.Background(), 99, domain.Principal{ID: 5, Role: domain.RoleDriver})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByBooking(t *testing.T) {
	svc, _ := newTestService()
	owner := domain.Principal{ID: 5, Role: domain.RoleDriver}

	_, err := svc.Pay(context.Background(), 1, owner)
	require.NoError(t, err)

	resp, err := svc.GetByBooking(context.Background(), 1, owner)
	require.NoError(t, err)
	require.Len(t, resp.Payments, 1)
	assert.InDelta(t, 200.00, resp.Payments[0].Amount, 0.001)

	_, err = svc.GetByBooking(context.Background(), 1, domain.Principal{ID: 7, Role: domain.RoleDriver})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
