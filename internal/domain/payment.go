package domain

import "time"

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentModeSimulated единственный поддерживаемый режим оплаты —
// реальный платёжный шлюз не подключен
const PaymentModeSimulated = "simulated"

// Payment represents a (simulated) payment against a booking
type Payment struct {
	ID            int64
	BookingID     int64
	Amount        float64
	PaymentStatus PaymentStatus
	PaymentMode   string

	CreatedAt time.Time
}
