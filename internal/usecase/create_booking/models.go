package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     // ID пользователя (из аутентификации)
	SlotID    int64     // ID слота
	StartTime time.Time // Начало бронирования
	EndTime   time.Time // Окончание бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	UserID     int64     // ID пользователя
	SlotID     int64     // ID слота
	LotID      int64     // ID парковки
	SlotNumber string    // Номер слота
	LotName    string    // Название парковки
	StartTime  time.Time // Начало
	EndTime    time.Time // Окончание
	TotalPrice float64   // Полная стоимость
	Status     string    // Статус бронирования
	CreatedAt  time.Time // Время создания
	UpdatedAt  time.Time // Время обновления
}
