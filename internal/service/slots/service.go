package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/infra/realtime"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	slotRepo "github.com/parkease/parkease-backend/internal/infra/storage/slot"
	"github.com/parkease/parkease-backend/internal/service/slots/models"
)

// Service сервис для работы со слотами
type Service struct {
	slotRepo     SlotRepository
	lotRepo      LotRepository
	activityRepo ActivityRepository
	notifier     Notifier
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	lotRepo LotRepository,
	activityRepo ActivityRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		lotRepo:      lotRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// ListByLot возвращает все слоты парковки, упорядоченные по номеру
func (s *Service) ListByLot(ctx context.Context, lotID int64) (*models.SlotListResponse, error) {
	s.logger.Info("ListByLot: fetching slots for lot id=%d", lotID)

	if _, err := s.lotRepo.GetByID(ctx, lotID); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("ListByLot: lot id=%d not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("ListByLot: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: ListByLot - repository error: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.GetByLot(ctx, lotID)
	if err != nil {
		s.logger.Error("ListByLot: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: ListByLot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByLot: successfully fetched %d slots for lot id=%d", len(slots), lotID)
	return models.FromDomainSlotList(slots), nil
}

// SetStatus принудительно меняет статус слота (административный override).
// Проверяется только допустимость статуса — администратор может выставить
// любое состояние, например занять слот под ремонт. Действие фиксируется
// в журнале, подписчики получают slot_update.
func (s *Service) SetStatus(ctx context.Context, slotID int64, req *models.UpdateSlotStatusRequest, principal domain.Principal) (*models.SlotResponse, error) {
	s.logger.Info("SetStatus: setting slot id=%d to status=%s by admin=%d", slotID, req.Status, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("SetStatus: access denied for user=%d role=%s", principal.ID, principal.Role)
		return nil, ErrAccessDenied
	}

	newStatus := domain.SlotStatus(req.Status)
	if !domain.ValidSlotStatus(newStatus) {
		s.logger.Warn("SetStatus: invalid status=%s for slot id=%d", req.Status, slotID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SetStatus: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("SetStatus: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	// Статус не меняется — ни записи в журнал, ни события
	if slot.Status == newStatus {
		s.logger.Info("SetStatus: slot id=%d already has status=%s", slotID, newStatus)
		return models.FromDomainSlot(slot), nil
	}

	if err := s.slotRepo.UpdateStatus(ctx, slotID, newStatus); err != nil {
		s.logger.Error("SetStatus: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}
	slot.Status = newStatus

	if _, err := s.activityRepo.Create(ctx, &domain.ActivityLog{
		AdminID: principal.ID,
		Action:  domain.ActionUpdateSlot,
		Details: fmt.Sprintf("slot %s (id=%d) set to %s", slot.SlotNumber, slot.ID, newStatus),
	}); err != nil {
		s.logger.Error("SetStatus: failed to log action for slot id=%d: %v", slotID, err)
	}

	s.notifier.Emit(realtime.EventSlotUpdate, realtime.SlotUpdatePayload{
		SlotID: slot.ID,
		LotID:  slot.LotID,
		Status: string(newStatus),
	})

	s.logger.Info("SetStatus: slot id=%d is now %s", slotID, newStatus)
	return models.FromDomainSlot(slot), nil
}
