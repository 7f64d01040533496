// Package scheduler drives organization runs: on an interval, at startup,
// on vault changes, and on demand. All triggers funnel into the same run
// callback, so behavior is identical regardless of why a run started.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// RunFunc performs one organization pass. reason names the trigger and is
// only used for logging.
type RunFunc func(ctx context.Context, reason string)

// Scheduler serializes runs through a single loop goroutine. Triggers that
// arrive while a run is active land in a one-slot pending channel (queued
// for after completion); further triggers while one is pending are dropped.
type Scheduler struct {
	interval   time.Duration
	runOnStart bool
	run        RunFunc
	logger     *slog.Logger

	pending chan string
}

// New creates a Scheduler. interval <= 0 disables timed runs.
func New(interval time.Duration, runOnStart bool, run RunFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		interval:   interval,
		runOnStart: runOnStart,
		run:        run,
		logger:     logger,
		pending:    make(chan string, 1),
	}
}

// Trigger requests a run. It never blocks; it reports false when a run is
// already pending and the request was dropped.
func (s *Scheduler) Trigger(reason string) bool {
	select {
	case s.pending <- reason:
		return true
	default:
		s.logger.Debug("scheduler: trigger dropped, run already pending",
			slog.String("reason", reason))
		return false
	}
}

// Run executes the scheduling loop until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.runOnStart {
		s.logger.Info("scheduler: startup run")
		s.run(ctx, "startup")
	}

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
		s.logger.Info("scheduler: started", slog.Duration("interval", s.interval))
	} else {
		s.logger.Info("scheduler: started, timed runs disabled")
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler: stopped")
			return nil
		case <-tick:
			s.run(ctx, "interval")
		case reason := <-s.pending:
			s.run(ctx, reason)
		}
	}
}
