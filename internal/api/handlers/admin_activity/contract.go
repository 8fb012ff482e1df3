package admin_activity

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/admin/models"
)

type AdminService interface {
	ActivityLogs(ctx context.Context) (*models.ActivityLogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
