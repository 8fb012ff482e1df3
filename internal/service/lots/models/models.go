package models

import (
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
)

// Request модели

// CreateLotRequest запрос на создание парковки
type CreateLotRequest struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Image        *string `json:"image,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TotalSlots   int     `json:"totalSlots"`
	PricePerHour float64 `json:"pricePerHour"`
}

// UpdateLotRequest запрос на обновление парковки (частичное обновление)
type UpdateLotRequest struct {
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
}

// Response модели

// LotStatsResponse живая статистика парковки
type LotStatsResponse struct {
	AvailableSlots  int     `json:"availableSlots"`
	OccupationRate  float64 `json:"occupationRate"`
	IsSurge         bool    `json:"isSurge"`
	PriceMultiplier float64 `json:"priceMultiplier"`
	CurrentPrice    float64 `json:"currentPrice"`
	AverageRating   float64 `json:"averageRating"`
	ReviewCount     int     `json:"reviewCount"`
}

// LotResponse ответ с данными парковки
type LotResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Image        *string `json:"image,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TotalSlots   int     `json:"totalSlots"`
	PricePerHour float64 `json:"pricePerHour"`
	OwnerID      int64   `json:"ownerId"`
	IsActive     bool    `json:"isActive"`
	IsArchived   bool    `json:"isArchived"`

	Stats *LotStatsResponse `json:"stats,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LotListResponse ответ со списком парковок
type LotListResponse struct {
	Lots []LotResponse `json:"lots"`
}

// Методы конвертации

// FromDomainLot конвертирует domain модель в DTO
func FromDomainLot(l *domain.ParkingLot, stats *domain.LotStats) *LotResponse {
	if l == nil {
		return nil
	}

	resp := &LotResponse{
		ID:           l.ID,
		Name:         l.Name,
		Address:      l.Address,
		Image:        l.Image,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		TotalSlots:   l.TotalSlots,
		PricePerHour: l.PricePerHour,
		OwnerID:      l.OwnerID,
		IsActive:     l.IsActive,
		IsArchived:   l.IsArchived,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}

	if stats != nil {
		resp.Stats = &LotStatsResponse{
			AvailableSlots:  stats.AvailableSlots,
			OccupationRate:  stats.OccupationRate,
			IsSurge:         stats.IsSurge,
			PriceMultiplier: stats.PriceMultiplier,
			CurrentPrice:    stats.CurrentPrice,
			AverageRating:   stats.AverageRating,
			ReviewCount:     stats.ReviewCount,
		}
	}

	return resp
}
