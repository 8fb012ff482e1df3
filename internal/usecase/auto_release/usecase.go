package auto_release

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/infra/realtime"
)

// UseCase периодический проход по бронированиям: завершает просроченные и
// освобождает их слоты, резервирует слоты под приближающиеся бронирования.
// Проход идемпотентен — повторный запуск по тем же данным ничего не меняет.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
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

// Execute выполняет один проход авторелиза. Ошибка по отдельному
// бронированию логируется и не прерывает обработку остальных.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	result := &Result{}

	// 1. Завершаем просроченные бронирования и освобождаем их слоты
	expired, err := uc.bookingRepo.GetExpired(ctx, now)
	if err != nil {
		uc.logger.Error("AutoRelease: failed to get expired bookings: %v", err)
		return nil, err
	}

	for _, booking := range expired {
		if err := uc.releaseOne(ctx, booking); err != nil {
			uc.logger.Error("AutoRelease: failed to release booking id=%d: %v", booking.ID, err)
			result.FailedCount++
			continue
		}
		result.ReleasedCount++
	}

	// 2. Резервируем слоты под бронирования, стартующие в ближайшем окне
	upcoming, err := uc.bookingRepo.GetActiveCovering(ctx, now, now.Add(domain.ReserveHorizon))
	if err != nil {
		uc.logger.Error("AutoRelease: failed to get upcoming bookings: %v", err)
		return result, err
	}

	for _, booking := range upcoming {
		activated, err := uc.activateOne(ctx, booking)
		if err != nil {
			uc.logger.Error("AutoRelease: failed to activate booking id=%d: %v", booking.ID, err)
			result.FailedCount++
			continue
		}
		if activated {
			result.ActivatedCount++
		}
	}

	if result.ReleasedCount > 0 || result.ActivatedCount > 0 || result.FailedCount > 0 {
		uc.logger.Info("AutoRelease: released=%d activated=%d failed=%d",
			result.ReleasedCount, result.ActivatedCount, result.FailedCount)
	}

	return result, nil
}

// releaseOne завершает одно просроченное бронирование и освобождает его слот
func (uc *UseCase) releaseOne(ctx context.Context, booking *domain.Booking) error {
	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusCompleted); err != nil {
		return err
	}

	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		return err
	}

	// Слот мог быть освобождён вручную или другим проходом
	if slot.Status == domain.SlotStatusAvailable {
		return nil
	}

	if err := uc.slotRepo.UpdateStatus(ctx, slot.ID, domain.SlotStatusAvailable); err != nil {
		return err
	}

	uc.notifier.Emit(realtime.EventSlotUpdate, realtime.SlotUpdatePayload{
		SlotID: slot.ID,
		LotID:  slot.LotID,
		Status: string(domain.SlotStatusAvailable),
	})

	return nil
}

// activateOne резервирует слот под приближающееся бронирование,
// если слот ещё свободен
func (uc *UseCase) activateOne(ctx context.Context, booking *domain.Booking) (bool, error) {
	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		return false, err
	}

	if slot.Status != domain.SlotStatusAvailable {
		return false, nil
	}

	if err := uc.slotRepo.UpdateStatus(ctx, slot.ID, domain.SlotStatusReserved); err != nil {
		return false, err
	}

	uc.notifier.Emit(realtime.EventSlotUpdate, realtime.SlotUpdatePayload{
		SlotID: slot.ID,
		LotID:  slot.LotID,
		Status: string(domain.SlotStatusReserved),
	})

	return true, nil
}
