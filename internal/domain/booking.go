package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus returns true if s is one of the known booking statuses
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a time-bound reservation of a single parking slot.
// Invariant: for a given slot no two bookings with status=active may have
// overlapping [StartTime, EndTime) intervals.
type Booking struct {
	ID         int64
	UserID     int64
	SlotID     int64
	StartTime  time.Time
	EndTime    time.Time
	TotalPrice float64
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is still active
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// IsExpired returns true if the booking's end time has passed
func (b *Booking) IsExpired(now time.Time) bool {
	return b.EndTime.Before(now)
}

// Overlaps reports whether the booking's [StartTime, EndTime) interval
// intersects the given half-open interval
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// CoversWindow reports whether the booking's interval intersects
// [now, now+horizon) — used to decide whether its slot should be held
func (b *Booking) CoversWindow(now time.Time, horizon time.Duration) bool {
	return !b.StartTime.After(now.Add(horizon)) && b.EndTime.After(now)
}
