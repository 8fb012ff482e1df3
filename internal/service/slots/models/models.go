package models

import "github.com/parkease/parkease-backend/internal/domain"

// Request модели

// UpdateSlotStatusRequest запрос на принудительную смену статуса слота
type UpdateSlotStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID         int64  `json:"id"`
	LotID      int64  `json:"lotId"`
	SlotNumber string `json:"slotNumber"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:         s.ID,
		LotID:      s.LotID,
		SlotNumber: s.SlotNumber,
		Type:       string(s.Type),
		Status:     string(s.Status),
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	if slots == nil {
		return &SlotListResponse{Slots: []SlotResponse{}}
	}

	resp := &SlotListResponse{
		Slots: make([]SlotResponse, len(slots)),
	}

	for i, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots[i] = *slotResp
		}
	}

	return resp
}
