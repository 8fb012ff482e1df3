package admin

import (
	"context"
	"fmt"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/admin/models"
	reviewmodels "github.com/parkease/parkease-backend/internal/service/reviews/models"
)

// Пороги занятости для системных предупреждений
const (
	occupancyCritical = 0.85
	occupancyWarning  = 0.60
)

// Доли от максимума для классификации загруженности часа
const (
	peakHighShare   = 0.7
	peakMediumShare = 0.4
)

const recentLimit = 20

// Service сервис административной аналитики
type Service struct {
	lotRepo      LotRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	activityRepo ActivityRepository
	reviewRepo   ReviewRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(
	lotRepo LotRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	activityRepo ActivityRepository,
	reviewRepo ReviewRepository,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:      lotRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		activityRepo: activityRepo,
		reviewRepo:   reviewRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// DashboardStats собирает карточки панели: парковки, слоты, активные
// бронирования и выручку по успешным платежам
func (s *Service) DashboardStats(ctx context.Context) (*models.DashboardStatsResponse, error) {
	s.logger.Info("DashboardStats: collecting")

	totalLots, err := s.lotRepo.Count(ctx, true)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count lots: %v", err)
		return nil, fmt.Errorf("%w: DashboardStats - failed to count lots: %v", ErrInternal, err)
	}

	totalSlots, err := s.slotRepo.Count(ctx)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count slots: %v", err)
		return nil, fmt.Errorf("%w: DashboardStats - failed to count slots: %v", ErrInternal, err)
	}

	activeBookings, err := s.bookingRepo.CountByStatus(ctx, domain.BookingStatusActive)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count active bookings: %v", err)
		return nil, fmt.Errorf("%w: DashboardStats - failed to count active bookings: %v", ErrInternal, err)
	}

	revenue, err := s.paymentRepo.SumSuccessful(ctx)
	if err != nil {
		s.logger.Error("DashboardStats: failed to sum revenue: %v", err)
		return nil, fmt.Errorf("%w: DashboardStats - failed to sum revenue: %v", ErrInternal, err)
	}

	return &models.DashboardStatsResponse{
		TotalLots:      totalLots,
		TotalSlots:     totalSlots,
		ActiveBookings: activeBookings,
		Revenue:        domain.Round2(revenue),
	}, nil
}

// SystemAlerts собирает предупреждения: перегруженные парковки и занятые
// слоты без активного бронирования
func (s *Service) SystemAlerts(ctx context.Context) (*models.AlertListResponse, error) {
	s.logger.Info("SystemAlerts: collecting")

	now := s.timeProvider.Now()
	var alerts []domain.Alert

	lots, err := s.lotRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("SystemAlerts: failed to list lots: %v", err)
		return nil, fmt.Errorf("%w: SystemAlerts - failed to list lots: %v", ErrInternal, err)
	}

	for _, lot := range lots {
		available, err := s.slotRepo.CountByLotAndStatus(ctx, lot.ID, domain.SlotStatusAvailable)
		if err != nil {
			s.logger.Error("SystemAlerts: failed to count slots for lot id=%d: %v", lot.ID, err)
			continue
		}

		occupation := domain.OccupationRate(available, lot.TotalSlots)
		switch {
		case occupation > occupancyCritical:
			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertHighOccupancy,
				Message:   fmt.Sprintf("lot %q is %.0f%% full", lot.Name, occupation*100),
				Severity:  domain.SeverityCritical,
				Timestamp: now,
			})
		case occupation > occupancyWarning:
			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertHighOccupancy,
				Message:   fmt.Sprintf("lot %q is %.0f%% full", lot.Name, occupation*100),
				Severity:  domain.SeverityWarning,
				Timestamp: now,
			})
		}
	}

	// Занятый слот, на который нет ни одного активного бронирования —
	// признак рассинхронизации состояний
	occupied, err := s.slotRepo.GetByStatus(ctx, domain.SlotStatusOccupied)
	if err != nil {
		s.logger.Error("SystemAlerts: failed to get occupied slots: %v", err)
		return nil, fmt.Errorf("%w: SystemAlerts - failed to get occupied slots: %v", ErrInternal, err)
	}

	for _, slot := range occupied {
		bookings, err := s.bookingRepo.GetActiveBySlot(ctx, slot.ID)
		if err != nil {
			s.logger.Error("SystemAlerts: failed to get bookings for slot id=%d: %v", slot.ID, err)
			continue
		}
		if len(bookings) == 0 {
			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertSlotMismatch,
				Message:   fmt.Sprintf("slot %s (id=%d) is occupied without an active booking", slot.SlotNumber, slot.ID),
				Severity:  domain.SeverityWarning,
				Timestamp: now,
			})
		}
	}

	s.logger.Info("SystemAlerts: collected %d alerts", len(alerts))
	return models.FromDomainAlerts(alerts), nil
}

// PeakHours возвращает распределение бронирований по часу начала.
// Загруженность часа классифицируется относительно максимума.
func (s *Service) PeakHours(ctx context.Context) (*models.PeakHoursResponse, error) {
	s.logger.Info("PeakHours: collecting")

	hours, err := s.bookingRepo.AggregatePeakHours(ctx)
	if err != nil {
		s.logger.Error("PeakHours: failed to aggregate: %v", err)
		return nil, fmt.Errorf("%w: PeakHours - failed to aggregate: %v", ErrInternal, err)
	}

	maxCount := 0
	for _, h := range hours {
		if h.Count > maxCount {
			maxCount = h.Count
		}
	}

	resp := &models.PeakHoursResponse{
		Hours: make([]models.PeakHourResponse, len(hours)),
	}
	for i, h := range hours {
		resp.Hours[i] = models.PeakHourResponse{
			Hour:  h.Hour,
			Count: h.Count,
			Level: classifyLoad(h.Count, maxCount),
		}
	}

	return resp, nil
}

// ActivityLogs возвращает последние действия администраторов
func (s *Service) ActivityLogs(ctx context.Context) (*models.ActivityLogListResponse, error) {
	s.logger.Info("ActivityLogs: fetching")

	logs, err := s.activityRepo.GetRecent(ctx, recentLimit)
	if err != nil {
		s.logger.Error("ActivityLogs: repository error: %v", err)
		return nil, fmt.Errorf("%w: ActivityLogs - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainActivityLogs(logs), nil
}

// RecentReviews возвращает последние отзывы по всем парковкам
func (s *Service) RecentReviews(ctx context.Context) (*reviewmodels.ReviewListResponse, error) {
	s.logger.Info("RecentReviews: fetching")

	reviews, err := s.reviewRepo.GetRecent(ctx, recentLimit)
	if err != nil {
		s.logger.Error("RecentReviews: repository error: %v", err)
		return nil, fmt.Errorf("%w: RecentReviews - repository error: %v", ErrInternal, err)
	}

	return reviewmodels.FromDomainReviewList(reviews), nil
}

// classifyLoad относит час к уровню загруженности по доле от максимума
func classifyLoad(count, maxCount int) string {
	if maxCount == 0 || count == 0 {
		return models.LoadLow
	}
	share := float64(count) / float64(maxCount)
	switch {
	case share >= peakHighShare:
		return models.LoadHigh
	case share >= peakMediumShare:
		return models.LoadMedium
	default:
		return models.LoadLow
	}
}
