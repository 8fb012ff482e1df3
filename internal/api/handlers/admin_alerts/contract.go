package admin_alerts

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/admin/models"
)

type AdminService interface {
	SystemAlerts(ctx context.Context) (*models.AlertListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
