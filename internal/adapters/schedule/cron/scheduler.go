package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/robfig/cron/v3"
)

const DefaultSpec = "*/15 * * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type Config struct {
	// Spec is a five-field cron expression or a descriptor such as
	// "@every 15m".
	Spec     string
	Location *time.Location
	Logger   *slog.Logger
}

// Scheduler runs a tick function on a cron schedule. Overlapping runs are
// skipped.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	schedule cron.Schedule
	logger   *slog.Logger
	stopped  chan struct{}
	stopOnce sync.Once
	started  bool
	mu       sync.Mutex
}

func New(cfg Config) (*Scheduler, error) {
	spec := strings.TrimSpace(cfg.Spec)
	if spec == "" {
		spec = DefaultSpec
	}

	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	if specSchedule, ok := schedule.(*cron.SpecSchedule); ok {
		specSchedule.Location = location
	}

	logger := observability.Component(cfg.Logger, "scheduler")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		spec:     spec,
		schedule: schedule,
		logger:   logger,
		stopped:  make(chan struct{}),
	}, nil
}

func (s *Scheduler) Spec() string {
	return s.spec
}

// Next returns the first activation strictly after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Start registers tick and starts the scheduler. It stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context, tick func(context.Context)) error {
	if tick == nil {
		return errors.New("scheduler requires a tick function")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}

	s.cron.Schedule(s.schedule, cron.FuncJob(func() { tick(ctx) }))
	s.cron.Start()
	s.started = true
	s.logger.Info("scheduler started", "spec", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running tick to finish. Safe to call multiple times.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		close(s.stopped)
		s.logger.Info("scheduler stopped")
	})
}

// Done is closed once the scheduler has fully stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.stopped
}
