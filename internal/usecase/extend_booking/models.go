package extend_booking

import "time"

// Request модель запроса на продление бронирования
type Request struct {
	BookingID  int64     // ID бронирования
	UserID     int64     // ID пользователя (из аутентификации)
	NewEndTime time.Time // Новое время окончания
}

// Response модель ответа с продлённым бронированием
type Response struct {
	ID         int64     // ID бронирования
	UserID     int64     // ID пользователя
	SlotID     int64     // ID слота
	StartTime  time.Time // Начало
	EndTime    time.Time // Новое окончание
	TotalPrice float64   // Пересчитанная полная стоимость
	Status     string    // Статус бронирования
}
