package models

import (
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
)

// Request модели

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	IssueReported bool   `json:"issueReported"`
}

// Response модели

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	LotID         int64     `json:"lotId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	IssueReported bool      `json:"issueReported"`
	UserName      *string   `json:"userName,omitempty"`
	LotName       *string   `json:"lotName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// Методы конвертации

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		LotID:         r.LotID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		IssueReported: r.IssueReported,
		UserName:      r.UserName,
		LotName:       r.LotName,
		CreatedAt:     r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список domain моделей в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	if reviews == nil {
		return &ReviewListResponse{Reviews: []ReviewResponse{}}
	}

	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, len(reviews)),
	}

	for i, review := range reviews {
		if reviewResp := FromDomainReview(review); reviewResp != nil {
			resp.Reviews[i] = *reviewResp
		}
	}

	return resp
}
