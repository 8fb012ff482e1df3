package create_payment

import (
	"context"

	"github.com/parkease/parkease-backend/internal/domain"
	"github.com/parkease/parkease-backend/internal/service/payments/models"
)

type PaymentService interface {
	Pay(ctx context.Context, bookingID int64, principal domain.Principal) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
