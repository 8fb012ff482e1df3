package admin_peak_hours

import (
	"context"

	"github.com/parkease/parkease-backend/internal/service/admin/models"
)

type AdminService interface {
	PeakHours(ctx context.Context) (*models.PeakHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
