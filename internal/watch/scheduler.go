package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// scheduler wraps gocron to fire interval triggers.
type scheduler struct {
	s gocron.Scheduler
}

func newScheduler(interval time.Duration, trigger func(string)) (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(trigger, TriggerInterval),
		gocron.WithName("interval-build"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create interval job: %w", err)
	}
	return &scheduler{s: s}, nil
}

func (s *scheduler) Start() {
	slog.Debug("Starting interval scheduler")
	s.s.Start()
}

func (s *scheduler) Stop() {
	if err := s.s.Shutdown(); err != nil {
		slog.Warn("Scheduler shutdown failed", slog.String("error", err.Error()))
	}
}
