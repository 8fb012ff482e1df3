package lots

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	"github.com/parkease/parkease-backend/internal/service/lots/models"
)

// Service сервис для работы с парковками
type Service struct {
	lotRepo      LotRepository
	slotRepo     SlotRepository
	reviewRepo   ReviewRepository
	activityRepo ActivityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(
	lotRepo LotRepository,
	slotRepo SlotRepository,
	reviewRepo ReviewRepository,
	activityRepo ActivityRepository,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:      lotRepo,
		slotRepo:     slotRepo,
		reviewRepo:   reviewRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create создает парковку вместе со слотами.
// Слоты нумеруются A-1..A-n и создаются свободными.
// Доступно владельцам и администраторам.
func (s *Service) Create(ctx context.Context, req *models.CreateLotRequest, principal domain.Principal) (*models.LotResponse, error) {
	s.logger.Info("Create: creating lot name=%q by user=%d", req.Name, principal.ID)

	if principal.Role != domain.RoleOwner && !principal.IsAdmin() {
		s.logger.Warn("Create: access denied for user=%d role=%s", principal.ID, principal.Role)
		return nil, ErrAccessDenied
	}

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	lot := &domain.ParkingLot{
		Name:         req.Name,
		Address:      req.Address,
		Image:        req.Image,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		TotalSlots:   req.TotalSlots,
		PricePerHour: req.PricePerHour,
		OwnerID:      principal.ID,
		IsActive:     true,
	}

	created, err := s.lotRepo.Create(ctx, lot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	slots := make([]*domain.Slot, created.TotalSlots)
	for i := range slots {
		slots[i] = &domain.Slot{
			LotID:      created.ID,
			SlotNumber: fmt.Sprintf("A-%d", i+1),
			Type:       domain.SlotTypeNormal,
			Status:     domain.SlotStatusAvailable,
		}
	}

	if err := s.slotRepo.BulkCreate(ctx, slots); err != nil {
		s.logger.Error("Create: failed to create slots for lot id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: Create - failed to create slots: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created lot id=%d with %d slots", created.ID, created.TotalSlots)

	stats, _ := s.getLotStats(ctx, created)
	return models.FromDomainLot(created, stats), nil
}

// List возвращает парковки с живой статистикой.
// activeOnly=true скрывает выключенные и архивные парковки (публичная выдача)
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.LotListResponse, error) {
	s.logger.Info("List: fetching lots, activeOnly=%t", activeOnly)

	lots, err := s.lotRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.LotListResponse{
		Lots: make([]models.LotResponse, 0, len(lots)),
	}

	for _, lot := range lots {
		stats, err := s.getLotStats(ctx, lot)
		if err != nil {
			// Парковка без статистики полезнее, чем пустая выдача
			s.logger.Error("List: failed to get stats for lot id=%d: %v", lot.ID, err)
		}
		resp.Lots = append(resp.Lots, *models.FromDomainLot(lot, stats))
	}

	s.logger.Info("List: successfully fetched %d lots", len(resp.Lots))
	return resp, nil
}

// Get возвращает парковку по ID с живой статистикой
func (s *Service) Get(ctx context.Context, id int64) (*models.LotResponse, error) {
	s.logger.Info("Get: fetching lot id=%d", id)

	lot, err := s.getLot(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.getLotStats(ctx, lot)
	if err != nil {
		s.logger.Error("Get: failed to get stats for lot id=%d: %v", id, err)
	}

	return models.FromDomainLot(lot, stats), nil
}

// Update частично обновляет парковку.
// Доступно владельцу парковки и администраторам.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateLotRequest, principal domain.Principal) (*models.LotResponse, error) {
	s.logger.Info("Update: updating lot id=%d by user=%d", id, principal.ID)

	lot, err := s.getLot(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerAccess(lot, principal); err != nil {
		return nil, err
	}

	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Address != nil {
		lot.Address = *req.Address
	}
	if req.Image != nil {
		lot.Image = req.Image
	}
	if req.Latitude != nil {
		lot.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		lot.Longitude = *req.Longitude
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
		}
		lot.PricePerHour = *req.PricePerHour
	}

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return nil, ErrLotNotFound
		}
		s.logger.Error("Update: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated lot id=%d", id)

	stats, _ := s.getLotStats(ctx, lot)
	return models.FromDomainLot(lot, stats), nil
}

// Delete удаляет парковку вместе со слотами.
// Доступно владельцу парковки и администраторам.
func (s *Service) Delete(ctx context.Context, id int64, principal domain.Principal) error {
	s.logger.Info("Delete: deleting lot id=%d by user=%d", id, principal.ID)

	lot, err := s.getLot(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(lot, principal); err != nil {
		return err
	}

	if err := s.slotRepo.DeleteByLot(ctx, id); err != nil {
		s.logger.Error("Delete: failed to delete slots for lot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to delete slots: %v", ErrInternal, err)
	}

	if err := s.lotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return ErrLotNotFound
		}
		s.logger.Error("Delete: repository error for lot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted lot id=%d", id)
	return nil
}

// Toggle переключает доступность парковки.
// Доступно только администраторам, действие фиксируется в журнале.
func (s *Service) Toggle(ctx context.Context, id int64, principal domain.Principal) (*models.LotResponse, error) {
	s.logger.Info("Toggle: toggling lot id=%d by admin=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("Toggle: access denied for user=%d role=%s", principal.ID, principal.Role)
		return nil, ErrAccessDenied
	}

	lot, err := s.getLot(ctx, id)
	if err != nil {
		return nil, err
	}

	newState := !lot.IsActive
	if err := s.lotRepo.SetActive(ctx, id, newState); err != nil {
		s.logger.Error("Toggle: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Toggle - repository error: %v", ErrInternal, err)
	}
	lot.IsActive = newState

	s.recordActivity(ctx, principal.ID, domain.ActionToggleStatus,
		fmt.Sprintf("lot %q (id=%d) set active=%t", lot.Name, lot.ID, newState))

	s.logger.Info("Toggle: lot id=%d is now active=%t", id, newState)

	stats, _ := s.getLotStats(ctx, lot)
	return models.FromDomainLot(lot, stats), nil
}

// ArchiveLot архивирует парковку: она пропадает из выдачи и выключается.
// Доступно только администраторам, действие фиксируется в журнале.
func (s *Service) ArchiveLot(ctx context.Context, id int64, principal domain.Principal) error {
	s.logger.Info("ArchiveLot: archiving lot id=%d by admin=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("ArchiveLot: access denied for user=%d role=%s", principal.ID, principal.Role)
		return ErrAccessDenied
	}

	lot, err := s.getLot(ctx, id)
	if err != nil {
		return err
	}

	if err := s.lotRepo.Archive(ctx, id); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return ErrLotNotFound
		}
		s.logger.Error("ArchiveLot: repository error for lot id=%d: %v", id, err)
		return fmt.Errorf("%w: ArchiveLot - repository error: %v", ErrInternal, err)
	}

	s.recordActivity(ctx, principal.ID, domain.ActionArchiveLot,
		fmt.Sprintf("lot %q (id=%d) archived", lot.Name, lot.ID))

	s.logger.Info("ArchiveLot: successfully archived lot id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getLot(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("getLot: lot id=%d not found", id)
			return nil, ErrLotNotFound
		}
		s.logger.Error("getLot: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getLot - repository error: %v", ErrInternal, err)
	}
	return lot, nil
}

// checkOwnerAccess проверяет, что пользователь владеет парковкой
// или является администратором
func (s *Service) checkOwnerAccess(lot *domain.ParkingLot, principal domain.Principal) error {
	if lot.OwnerID == principal.ID || principal.IsAdmin() {
		return nil
	}
	s.logger.Warn("checkOwnerAccess: user=%d has no access to lot id=%d", principal.ID, lot.ID)
	return ErrAccessDenied
}

// getLotStats собирает живую статистику парковки: свободные слоты,
// занятость, действующую ставку и агрегат отзывов
func (s *Service) getLotStats(ctx context.Context, lot *domain.ParkingLot) (*domain.LotStats, error) {
	available, err := s.slotRepo.CountByLotAndStatus(ctx, lot.ID, domain.SlotStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to count available slots: %w", err)
	}

	occupation := domain.OccupationRate(available, lot.TotalSlots)
	currentPrice, isSurge := domain.CurrentRate(lot.PricePerHour, occupation)

	multiplier := 1.0
	if isSurge {
		multiplier = domain.SurgeMultiplier
	}

	stats := &domain.LotStats{
		AvailableSlots:  available,
		OccupationRate:  domain.Round2(occupation),
		IsSurge:         isSurge,
		PriceMultiplier: multiplier,
		CurrentPrice:    currentPrice,
	}

	summary, err := s.reviewRepo.AggregateByLot(ctx, lot.ID)
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	stats.AverageRating = domain.Round2(summary.AverageRating)
	stats.ReviewCount = summary.Count

	return stats, nil
}

// recordActivity пишет действие администратора в журнал.
// Сбой журнала не отменяет само действие.
func (s *Service) recordActivity(ctx context.Context, adminID int64, action, details string) {
	_, err := s.activityRepo.Create(ctx, &domain.ActivityLog{
		AdminID: adminID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		s.logger.Error("recordActivity: failed to log action=%s by admin=%d: %v", action, adminID, err)
	}
}

func validateCreateRequest(req *models.CreateLotRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if req.TotalSlots <= 0 {
		return fmt.Errorf("%w: totalSlots must be positive", ErrInvalidInput)
	}
	if req.PricePerHour <= 0 {
		return fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}
	return nil
}
