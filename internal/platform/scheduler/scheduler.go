// Package scheduler provides cancellable periodic background tasks so the
// rate engine's refresh loops can be driven by wall-clock tickers in
// production and by direct Tick calls in tests.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task is a named periodic job. The function receives a context bounded by
// the scheduler's lifetime. Errors are logged and the loop keeps going; a
// failed tick is retried only by the next scheduled tick.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs tasks until its context is cancelled.
type Scheduler struct {
	logger *slog.Logger
	tasks  []Task
}

// New creates a Scheduler with the given tasks.
func New(logger *slog.Logger, tasks ...Task) *Scheduler {
	return &Scheduler{logger: logger, tasks: tasks}
}

// Start launches one goroutine per task. It returns immediately; cancelling
// ctx stops every loop.
func (s *Scheduler) Start(ctx context.Context) {
	for _, task := range s.tasks {
		go s.loop(ctx, task)
	}
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Background task stopped", slog.String("task", task.Name))
			return
		case <-ticker.C:
			s.Tick(ctx, task)
		}
	}
}

// Tick runs a task once. Exposed so tests can drive ticks deterministically.
func (s *Scheduler) Tick(ctx context.Context, task Task) {
	if err := task.Run(ctx); err != nil {
		s.logger.Error("Background task failed",
			slog.String("task", task.Name),
			slog.String("error", err.Error()),
		)
	}
}
