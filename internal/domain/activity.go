package domain

import "time"

// Действия, фиксируемые в журнале активности администраторов
const (
	ActionToggleStatus = "TOGGLE_STATUS"
	ActionArchiveLot   = "ARCHIVE_LOT"
	ActionUpdateSlot   = "UPDATE_SLOT"
)

// ActivityLog запись журнала действий администратора
type ActivityLog struct {
	ID      int64
	AdminID int64
	Action  string
	Details string

	CreatedAt time.Time

	// Denormalized for admin listings
	AdminName  *string
	AdminEmail *string
}
