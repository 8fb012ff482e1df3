package extend_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("extend_booking: booking not found")

	// ErrNotOwner возвращается, когда бронирование принадлежит другому пользователю
	ErrNotOwner = errors.New("extend_booking: booking belongs to another user")

	// ErrBookingNotActive возвращается при попытке продлить неактивное бронирование
	ErrBookingNotActive = errors.New("extend_booking: booking is not active")

	// ErrInvalidEndTime возвращается, когда новое время окончания не позже текущего
	ErrInvalidEndTime = errors.New("extend_booking: new end time must be after current end time")

	// ErrSlotConflict возвращается при пересечении продлённого интервала с другим бронированием
	ErrSlotConflict = errors.New("extend_booking: slot is already booked for this time period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("extend_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_booking: internal error")
)
