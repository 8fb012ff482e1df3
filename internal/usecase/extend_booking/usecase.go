package extend_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
	bookingRepo "github.com/parkease/parkease-backend/internal/infra/storage/booking"
)

// UseCase use case для продления бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	lotRepo      LotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lotRepo LotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case продления бронирования.
// Стоимость пересчитывается за весь интервал по текущей ставке парковки.
// Проверка пересечений и запись выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtendBooking: booking=%d, user=%d, newEnd=%s",
		req.BookingID, req.UserID, req.NewEndTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtendBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование должно существовать и принадлежать пользователю
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ExtendBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ExtendBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("ExtendBooking: booking id=%d belongs to user=%d, requested by user=%d",
				booking.ID, booking.UserID, req.UserID)
			return ErrNotOwner
		}

		// 2.2. Продлевать можно только активное бронирование
		if !booking.IsActive() {
			uc.logger.Warn("ExtendBooking: booking id=%d has status=%s", booking.ID, booking.Status)
			return ErrBookingNotActive
		}

		// 2.3. Новое окончание строго позже текущего
		if !req.NewEndTime.After(booking.EndTime) {
			return ErrInvalidEndTime
		}

		// 2.4. Проверка пересечений продлённого интервала с чужими
		// бронированиями слота (FOR UPDATE внутри транзакции)
		active, err := uc.bookingRepo.GetActiveBySlot(txCtx, booking.SlotID)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to get active bookings for slot id=%d: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		if hasOverlap(active, booking.StartTime, req.NewEndTime, booking.ID) {
			uc.logger.Warn("ExtendBooking: extended period conflicts on slot id=%d", booking.SlotID)
			return ErrSlotConflict
		}

		// 2.5. Пересчитываем полную стоимость по текущей ставке
		slot, err := uc.slotRepo.GetByID(txCtx, booking.SlotID)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to get slot id=%d: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		lot, err := uc.lotRepo.GetByID(txCtx, slot.LotID)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to get lot id=%d: %v", slot.LotID, err)
			return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
		}

		available, err := uc.slotRepo.CountByLotAndStatus(txCtx, lot.ID, domain.SlotStatusAvailable)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to count available slots for lot id=%d: %v", lot.ID, err)
			return fmt.Errorf("%w: failed to count available slots: %v", ErrInternal, err)
		}

		rate, _ := domain.CurrentRate(lot.PricePerHour, domain.OccupationRate(available, lot.TotalSlots))
		price := domain.BookingPrice(booking.StartTime, req.NewEndTime, rate)

		uc.logger.Info("ExtendBooking: booking=%d rate=%.2f newPrice=%.2f", booking.ID, rate, price)

		// 2.6. Сохраняем новое окончание и стоимость
		if err := uc.bookingRepo.UpdateEndTimeAndPrice(txCtx, booking.ID, req.NewEndTime, price); err != nil {
			uc.logger.Error("ExtendBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.EndTime = req.NewEndTime
		booking.TotalPrice = price
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ExtendBooking: successfully extended booking id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		SlotID:     result.SlotID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		TotalPrice: result.TotalPrice,
		Status:     string(result.Status),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.NewEndTime.IsZero() {
		return fmt.Errorf("%w: newEndTime is required", ErrInvalidInput)
	}

	return nil
}

// hasOverlap проверяет пересечение интервала [start, end) с активными
// бронированиями слота, исключая продлеваемое бронирование
func hasOverlap(bookings []*domain.Booking, start, end time.Time, excludeID int64) bool {
	for _, b := range bookings {
		if b.ID == excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
