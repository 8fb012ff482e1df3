package create_booking

import "errors"

var (
	// ErrInvalidRange возвращается, когда время окончания не позже времени начала
	ErrInvalidRange = errors.New("create_booking: end time must be after start time")

	// ErrPastBooking возвращается, когда начало раньше, чем now минус грейс-окно
	ErrPastBooking = errors.New("create_booking: cannot book in the past")

	// ErrAdvanceLimitExceeded возвращается, когда начало дальше лимита предварительного бронирования
	ErrAdvanceLimitExceeded = errors.New("create_booking: advance booking limit exceeded")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrLotNotFound возвращается, когда парковка слота не найдена
	ErrLotNotFound = errors.New("create_booking: parking lot not found")

	// ErrSlotConflict возвращается при пересечении с другим активным бронированием слота
	ErrSlotConflict = errors.New("create_booking: slot is already booked for this time period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
