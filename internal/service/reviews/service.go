package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/parkease/parkease-backend/internal/domain"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	"github.com/parkease/parkease-backend/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo ReviewRepository
	lotRepo    LotRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, lotRepo LotRepository, logger Logger) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		lotRepo:    lotRepo,
		logger:     logger,
	}
}

// Create создает отзыв о парковке. Отзывы не редактируются и не удаляются.
func (s *Service) Create(ctx context.Context, lotID int64, req *models.CreateReviewRequest, principal domain.Principal) (*models.ReviewResponse, error) {
	s.logger.Info("Create: creating review for lot id=%d by user=%d rating=%d", lotID, principal.ID, req.Rating)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		s.logger.Warn("Create: invalid rating=%d for lot id=%d", req.Rating, lotID)
		return nil, ErrInvalidRating
	}

	if strings.TrimSpace(req.Comment) == "" {
		s.logger.Warn("Create: empty comment for lot id=%d", lotID)
		return nil, ErrInvalidInput
	}

	if _, err := s.lotRepo.GetByID(ctx, lotID); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("Create: lot id=%d not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("Create: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	review := &domain.Review{
		UserID:        principal.ID,
		LotID:         lotID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		IssueReported: req.IssueReported,
	}

	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created review id=%d for lot id=%d", created.ID, lotID)
	return models.FromDomainReview(created), nil
}

// GetByLot возвращает отзывы парковки, новые первыми
func (s *Service) GetByLot(ctx context.Context, lotID int64) (*models.ReviewListResponse, error) {
	s.logger.Info("GetByLot: fetching reviews for lot id=%d", lotID)

	if _, err := s.lotRepo.GetByID(ctx, lotID); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("GetByLot: lot id=%d not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("GetByLot: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: GetByLot - repository error: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.GetByLot(ctx, lotID)
	if err != nil {
		s.logger.Error("GetByLot: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: GetByLot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByLot: successfully fetched %d reviews for lot id=%d", len(reviews), lotID)
	return models.FromDomainReviewList(reviews), nil
}
