package domain

import "time"

// Временные ограничения бронирования
const (
	// GraceWindow допускает старт бронирования немного в прошлом,
	// чтобы поглотить сетевые задержки
	GraceWindow = 2 * time.Minute

	// MaxAdvanceBooking максимальный горизонт бронирования
	MaxAdvanceBooking = 7 * 24 * time.Hour

	// ReserveHorizon бронирования, начинающиеся в этом окне от текущего
	// момента, сразу переводят слот в reserved; более поздние оставляют
	// слот available до приближения окна
	ReserveHorizon = 30 * time.Minute
)

// Динамическое ценообразование
const (
	// SurgeThreshold доля занятых слотов, выше которой включается surge
	SurgeThreshold = 0.8

	// SurgeMultiplier множитель к базовой цене при surge
	SurgeMultiplier = 1.5
)

// Ограничения отзывов
const (
	MinRating = 1
	MaxRating = 5
)
