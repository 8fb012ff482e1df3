package domain

// SlotStatus represents the occupancy status of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusReserved  SlotStatus = "reserved"
	SlotStatusOccupied  SlotStatus = "occupied"
)

// ValidSlotStatus returns true if s is one of the known slot statuses
func ValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotStatusAvailable, SlotStatusReserved, SlotStatusOccupied:
		return true
	}
	return false
}

// SlotType represents the kind of parking slot
type SlotType string

const (
	SlotTypeNormal SlotType = "normal"
	SlotTypeEV     SlotType = "ev"
)

// Slot represents a single physical parking space belonging to one lot.
// SlotNumber is unique within the lot.
type Slot struct {
	ID         int64
	LotID      int64
	SlotNumber string
	Type       SlotType
	Status     SlotStatus
}

// IsAvailable returns true if the slot is free right now
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}
