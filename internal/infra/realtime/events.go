package realtime

import "time"

// Типы событий, рассылаемых подписчикам
const (
	// EventSlotUpdate изменение статуса слота
	EventSlotUpdate = "slot_update"

	// EventNewBooking новое бронирование (для админ-панели)
	EventNewBooking = "new_booking"
)

// SlotUpdatePayload полезная нагрузка события slot_update
type SlotUpdatePayload struct {
	SlotID int64  `json:"slotId"`
	LotID  int64  `json:"lotId"`
	Status string `json:"status"`
}

// NewBookingPayload полезная нагрузка события new_booking
type NewBookingPayload struct {
	BookingID  int64     `json:"bookingId"`
	User       string    `json:"user"`
	Lot        string    `json:"lot"`
	Slot       string    `json:"slot"`
	StartTime  time.Time `json:"startTime"`
	TotalPrice float64   `json:"totalPrice"`
}

// envelope обёртка сообщения: тип события + полезная нагрузка
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
