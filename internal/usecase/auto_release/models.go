package auto_release

// Result итог одного прохода авторелиза
type Result struct {
	ReleasedCount  int // Завершённых просроченных бронирований
	ActivatedCount int // Слотов, зарезервированных под приближающиеся бронирования
	FailedCount    int // Пропущенных из-за ошибок элементов
}
