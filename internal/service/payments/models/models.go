package models

import (
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
)

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"bookingId"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMode   string    `json:"paymentMode"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		PaymentStatus: string(p.PaymentStatus),
		PaymentMode:   p.PaymentMode,
		CreatedAt:     p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	if payments == nil {
		return &PaymentListResponse{Payments: []PaymentResponse{}}
	}

	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, len(payments)),
	}

	for i, payment := range payments {
		if paymentResp := FromDomainPayment(payment); paymentResp != nil {
			resp.Payments[i] = *paymentResp
		}
	}

	return resp
}
