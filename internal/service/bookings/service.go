package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/infra/realtime"
	bookingRepo "github.com/parkease/parkease-backend/internal/infra/storage/booking"
	"github.com/parkease/parkease-backend/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор — любое
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != principal.ID && !principal.IsAdmin() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Попутно завершает просроченные активные бронирования и освобождает их
// слоты — пользователь всегда видит актуальные статусы, даже если
// периодический авторелиз ещё не добрался до них.
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, booking := range bookings {
		if !booking.IsActive() || !booking.IsExpired(now) {
			continue
		}
		// Ошибка по отдельному бронированию не портит выдачу —
		// его доберёт следующий проход авторелиза
		if err := s.expireOne(ctx, booking); err != nil {
			s.logger.Error("GetUserBookings: failed to expire booking id=%d: %v", booking.ID, err)
			continue
		}
		booking.Status = domain.BookingStatusCompleted
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// End досрочно завершает активное бронирование пользователя
// и освобождает слот
func (s *Service) End(ctx context.Context, bookingID int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("End: ending booking id=%d by user=%d", bookingID, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("End: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("End: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: End - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != principal.ID && !principal.IsAdmin() {
		s.logger.Warn("End: access denied for user=%d to booking id=%d", principal.ID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Warn("End: booking id=%d has status=%s", bookingID, booking.Status)
		return nil, ErrBookingNotActive
	}

	if err := s.expireOne(ctx, booking); err != nil {
		s.logger.Error("End: failed to end booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: End - failed to end booking: %v", ErrInternal, err)
	}

	booking.Status = domain.BookingStatusCompleted

	s.logger.Info("End: successfully ended booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// expireOne завершает бронирование и освобождает его слот
func (s *Service) expireOne(ctx context.Context, booking *domain.Booking) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusCompleted); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		return fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.Status == domain.SlotStatusAvailable {
		return nil
	}

	if err := s.slotRepo.UpdateStatus(ctx, slot.ID, domain.SlotStatusAvailable); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	s.notifier.Emit(realtime.EventSlotUpdate, realtime.SlotUpdatePayload{
		SlotID: slot.ID,
		LotID:  slot.LotID,
		Status: string(domain.SlotStatusAvailable),
	})

	return nil
}
