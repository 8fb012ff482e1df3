package create_booking

import (
	"fmt"
	"time"

	"github.com/parkease/parkease-backend/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	return nil
}

// validateWindow проверяет временное окно бронирования.
// Порядок проверок фиксирован: корректность интервала, грейс-окно,
// лимит предварительного бронирования.
func validateWindow(start, end, now time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}

	// Старт допускается немного в прошлом (сетевые задержки)
	if start.Before(now.Add(-domain.GraceWindow)) {
		return ErrPastBooking
	}

	if start.After(now.Add(domain.MaxAdvanceBooking)) {
		return ErrAdvanceLimitExceeded
	}

	return nil
}

// hasOverlap проверяет пересечение интервала [start, end) с активными
// бронированиями слота. Полуинтервалы: стык впритык не считается
// пересечением. excludeID исключает собственное бронирование (при продлении).
func hasOverlap(bookings []*domain.Booking, start, end time.Time, excludeID int64) bool {
	for _, b := range bookings {
		if b.ID == excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
