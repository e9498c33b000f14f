package worker

import (
	"context"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"time"

	"go.uber.org/zap"
)

type StatsRepository interface {
	Statistics(ctx context.Context) task.Statistics
}

// StatsWorker периодически пишет сводку по задачам в лог.
type StatsWorker struct {
	repo     StatsRepository
	interval time.Duration
}

func NewStatsWorker(repo StatsRepository, interval time.Duration) *StatsWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StatsWorker{
		repo:     repo,
		interval: interval,
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.report(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновый сбор статистики останавливается")
			return
		}
	}
}

func (w *StatsWorker) report(ctx context.Context) {
	start := time.Now()
	stats := w.repo.Statistics(ctx)

	fields := []zap.Field{
		zap.Int("total", stats.Total),
		zap.Duration("ms", time.Since(start)),
	}
	for status, count := range stats.ByStatus {
		fields = append(fields, zap.Int("status_"+string(status), count))
	}

	logger.Info("Worker: Сводка по задачам", fields...)
}
