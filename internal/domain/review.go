package domain

import "time"

// Review represents a user's review of a parking lot (append-only)
type Review struct {
	ID            int64
	UserID        int64
	LotID         int64
	Rating        int // 1..5
	Comment       string
	IssueReported bool

	CreatedAt time.Time

	// Denormalized for admin listings
	UserName *string
	LotName  *string
}

// RatingSummary aggregated review data for a lot
type RatingSummary struct {
	AverageRating float64
	Count         int
}
