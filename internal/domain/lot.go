package domain

import "time"

// ParkingLot represents a parking lot owned by a user.
// Invariant: TotalSlots equals the number of Slot entities referencing the
// lot (slots are bulk-created together with the lot).
type ParkingLot struct {
	ID           int64
	Name         string
	Address      string
	Image        *string
	Latitude     float64
	Longitude    float64
	TotalSlots   int
	PricePerHour float64
	OwnerID      int64
	IsActive     bool
	IsArchived   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LotStats aggregated live statistics of a lot, attached to listings
type LotStats struct {
	AvailableSlots  int
	OccupationRate  float64
	IsSurge         bool
	PriceMultiplier float64
	CurrentPrice    float64
	AverageRating   float64
	ReviewCount     int
}
