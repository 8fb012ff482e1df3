package extend_booking

import (
	"time"

	extendBooking "github.com/parkease/parkease-backend/internal/usecase/extend_booking"
)

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	NewEndTime string `json:"newEndTime"` // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	SlotID     int64   `json:"slotId"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExtendBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*extendBooking.Request, error) {
	newEnd, err := time.Parse(time.RFC3339, r.NewEndTime)
	if err != nil {
		return nil, err
	}

	return &extendBooking.Request{
		BookingID:  bookingID,
		UserID:     userID,
		NewEndTime: newEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		SlotID:     resp.SlotID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		TotalPrice: resp.TotalPrice,
		Status:     resp.Status,
	}
}
