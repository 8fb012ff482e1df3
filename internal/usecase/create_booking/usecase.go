package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/infra/realtime"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	slotRepo "github.com/parkease/parkease-backend/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	lotRepo      LotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lotRepo LotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		lotRepo:      lotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и запись выполняются в сериализуемой транзакции с
// блокировкой активных бронирований слота (FOR UPDATE) — две конкурирующие
// заявки на один слот не могут обе пройти проверку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, start=%s, end=%s",
		req.UserID, req.SlotID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация временного окна
	if err := validateWindow(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: window validation failed: %v", err)
		return nil, err
	}

	var (
		result       *domain.Booking
		bookedSlot   *domain.Slot
		bookedLot    *domain.ParkingLot
		slotReserved bool
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Слот должен существовать
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 4.2. Парковка слота должна существовать
		lot, err := uc.lotRepo.GetByID(txCtx, slot.LotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				uc.logger.Warn("CreateBooking: lot id=%d not found for slot id=%d", slot.LotID, slot.ID)
				return ErrLotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get lot id=%d: %v", slot.LotID, err)
			return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
		}

		// 4.3. Проверка пересечений с активными бронированиями слота
		// (FOR UPDATE внутри транзакции)
		bookings, err := uc.bookingRepo.GetActiveBySlot(txCtx, req.SlotID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		if hasOverlap(bookings, req.StartTime, req.EndTime, 0) {
			uc.logger.Warn("CreateBooking: slot id=%d already booked for requested period", req.SlotID)
			return ErrSlotConflict
		}

		// 4.4. Считаем стоимость по текущей ставке парковки
		// (занятость считается по живым счётчикам слотов, без кэша)
		available, err := uc.slotRepo.CountByLotAndStatus(txCtx, lot.ID, domain.SlotStatusAvailable)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count available slots for lot id=%d: %v", lot.ID, err)
			return fmt.Errorf("%w: failed to count available slots: %v", ErrInternal, err)
		}

		rate, isSurge := domain.CurrentRate(lot.PricePerHour, domain.OccupationRate(available, lot.TotalSlots))
		price := domain.BookingPrice(req.StartTime, req.EndTime, rate)

		uc.logger.Info("CreateBooking: lot=%d rate=%.2f surge=%t price=%.2f", lot.ID, rate, isSurge, price)

		// 4.5. Создаем бронирование
		booking := &domain.Booking{
			UserID:     req.UserID,
			SlotID:     req.SlotID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			TotalPrice: price,
			Status:     domain.BookingStatusActive,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.6. Ближайшие бронирования сразу резервируют слот; далёкие
		// оставляют его available до приближения окна (активирует sweep)
		if created.CoversWindow(now, domain.ReserveHorizon) {
			if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotStatusReserved); err != nil {
				uc.logger.Error("CreateBooking: failed to reserve slot id=%d: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
			slotReserved = true
		}

		result = created
		bookedSlot = slot
		bookedLot = lot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Уведомления отправляются только после фиксации транзакции:
	// бронирование либо полностью создано (включая переход слота), либо нет
	if slotReserved {
		uc.notifier.Emit(realtime.EventSlotUpdate, realtime.SlotUpdatePayload{
			SlotID: bookedSlot.ID,
			LotID:  bookedSlot.LotID,
			Status: string(domain.SlotStatusReserved),
		})

		uc.notifier.Emit(realtime.EventNewBooking, realtime.NewBookingPayload{
			BookingID:  result.ID,
			User:       uc.lookupUserName(ctx, req.UserID),
			Lot:        bookedLot.Name,
			Slot:       bookedSlot.SlotNumber,
			StartTime:  result.StartTime,
			TotalPrice: result.TotalPrice,
		})
	}

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		SlotID:     result.SlotID,
		LotID:      bookedLot.ID,
		SlotNumber: bookedSlot.SlotNumber,
		LotName:    bookedLot.Name,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		TotalPrice: result.TotalPrice,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// lookupUserName возвращает имя пользователя для события new_booking.
// Ошибка не критична — событие информационное.
func (uc *UseCase) lookupUserName(ctx context.Context, userID int64) string {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to get user id=%d for notification: %v", userID, err)
		return ""
	}
	return u.Name
}
