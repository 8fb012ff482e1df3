package admin_stats

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/admin/models"
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*models.DashboardStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
