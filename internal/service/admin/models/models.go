package models

import (
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
)

// Уровни загруженности часа для аналитики пиков
const (
	LoadLow    = "Low"
	LoadMedium = "Medium"
	LoadHigh   = "High"
)

// Response модели

// DashboardStatsResponse карточки административной панели
type DashboardStatsResponse struct {
	TotalLots      int     `json:"totalLots"`
	TotalSlots     int     `json:"totalSlots"`
	ActiveBookings int     `json:"activeBookings"`
	Revenue        float64 `json:"revenue"`
}

// AlertResponse системное предупреждение
type AlertResponse struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertListResponse список системных предупреждений
type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// PeakHourResponse агрегат бронирований по часу начала
type PeakHourResponse struct {
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
	Level string `json:"level"`
}

// PeakHoursResponse почасовая аналитика бронирований
type PeakHoursResponse struct {
	Hours []PeakHourResponse `json:"hours"`
}

// ActivityLogResponse запись журнала действий администратора
type ActivityLogResponse struct {
	ID         int64     `json:"id"`
	AdminID    int64     `json:"adminId"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	AdminName  *string   `json:"adminName,omitempty"`
	AdminEmail *string   `json:"adminEmail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ActivityLogListResponse список записей журнала
type ActivityLogListResponse struct {
	Logs []ActivityLogResponse `json:"logs"`
}

// Методы конвертации

// FromDomainAlerts конвертирует список domain моделей в DTO
func FromDomainAlerts(alerts []domain.Alert) *AlertListResponse {
	resp := &AlertListResponse{
		Alerts: make([]AlertResponse, len(alerts)),
	}
	for i, a := range alerts {
		resp.Alerts[i] = AlertResponse{
			Type:      a.Type,
			Message:   a.Message,
			Severity:  string(a.Severity),
			Timestamp: a.Timestamp,
		}
	}
	return resp
}

// FromDomainActivityLogs конвертирует список domain моделей в DTO
func FromDomainActivityLogs(logs []*domain.ActivityLog) *ActivityLogListResponse {
	resp := &ActivityLogListResponse{
		Logs: make([]ActivityLogResponse, len(logs)),
	}
	for i, l := range logs {
		resp.Logs[i] = ActivityLogResponse{
			ID:         l.ID,
			AdminID:    l.AdminID,
			Action:     l.Action,
			Details:    l.Details,
			AdminName:  l.AdminName,
			AdminEmail: l.AdminEmail,
			CreatedAt:  l.CreatedAt,
		}
	}
	return resp
}
