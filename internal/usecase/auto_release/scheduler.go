package auto_release

import (
	"context"
	"time"
)

// Scheduler запускает авторелиз с заданным интервалом
type Scheduler struct {
	useCase  *UseCase
	interval time.Duration
	logger   Logger
}

// NewScheduler создает новый планировщик авторелиза
func NewScheduler(useCase *UseCase, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		useCase:  useCase,
		interval: interval,
		logger:   logger,
	}
}

// Run блокирует до отмены контекста, выполняя проход каждые interval.
// Ошибка одного прохода не останавливает планировщик.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("AutoRelease scheduler started with interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("AutoRelease scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.useCase.Execute(ctx); err != nil {
				s.logger.Error("AutoRelease scheduler: sweep failed: %v", err)
			}
		}
	}
}
