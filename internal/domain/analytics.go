package domain

import "time"

// PeakHour агрегат количества бронирований по часу начала
type PeakHour struct {
	Hour  int
	Count int
}

// DashboardStats карточки административной панели
type DashboardStats struct {
	TotalLots      int
	TotalSlots     int
	ActiveBookings int
	Revenue        float64
}

// AlertSeverity важность системного предупреждения
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Типы системных предупреждений
const (
	AlertHighOccupancy = "HIGH_OCCUPANCY"
	AlertSlotMismatch  = "SLOT_MISMATCH"
	AlertSystem        = "SYSTEM"
)

// Alert системное предупреждение для административной панели
type Alert struct {
	Type      string
	Message   string
	Severity  AlertSeverity
	Timestamp time.Time
}
