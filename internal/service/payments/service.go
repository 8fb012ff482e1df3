package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	bookingRepo "github.com/parkease/parkease-backend/internal/infra/storage/booking"
	"github.com/parkease/parkease-backend/internal/service/payments/models"
)

// Service сервис симулированных платежей. Платёжный шлюз не подключен:
// оплата всегда проходит успешно на сумму бронирования.
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(paymentRepo PaymentRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Pay проводит симулированный платёж за бронирование.
// Сумма берётся из бронирования, повторная оплата отвергается.
func (s *Service) Pay(ctx context.Context, bookingID int64, principal domain.Principal) (*models.PaymentResponse, error) {
	s.logger.Info("Pay: paying for booking id=%d by user=%d", bookingID, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Pay: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Pay: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != principal.ID && !principal.IsAdmin() {
		s.logger.Warn("Pay: access denied for user=%d to booking id=%d", principal.ID, bookingID)
		return nil, ErrAccessDenied
	}

	existing, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Pay: failed to get payments for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}
	for _, p := range existing {
		if p.PaymentStatus == domain.PaymentStatusSuccess {
			s.logger.Warn("Pay: booking id=%d is already paid by payment id=%d", bookingID, p.ID)
			return nil, ErrAlreadyPaid
		}
	}

	payment := &domain.Payment{
		BookingID:     bookingID,
		Amount:        booking.TotalPrice,
		PaymentStatus: domain.PaymentStatusSuccess,
		PaymentMode:   domain.PaymentModeSimulated,
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		s.logger.Error("Pay: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Pay: successfully created payment id=%d amount=%.2f for booking id=%d",
		created.ID, created.Amount, bookingID)
	return models.FromDomainPayment(created), nil
}

// GetByBooking возвращает платежи бронирования.
// Пользователь видит только платежи за свои бронирования.
func (s *Service) GetByBooking(ctx context.Context, bookingID int64, principal domain.Principal) (*models.PaymentListResponse, error) {
	s.logger.Info("GetByBooking: fetching payments for booking id=%d by user=%d", bookingID, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBooking - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != principal.ID && !principal.IsAdmin() {
		s.logger.Warn("GetByBooking: access denied for user=%d to booking id=%d", principal.ID, bookingID)
		return nil, ErrAccessDenied
	}

	payments, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetByBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBooking - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}
