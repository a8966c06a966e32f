package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Minute

// Scheduler triggers a pipeline run on a cron spec. It replaces an external
// periodic trigger for deployments without one.
type Scheduler struct {
	ctx  context.Context
	cron *cron.Cron
	spec string
	run  func(ctx context.Context) error
	log  *slog.Logger
}

func New(
	ctx context.Context,
	spec string,
	run func(ctx context.Context) error,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	return &Scheduler{
		ctx:  ctx,
		cron: c,
		spec: spec,
		run:  run,
		log:  log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	if err := s.run(ctx); err != nil {
		s.log.ErrorContext(ctx, "Scheduled digest run failed",
			"error", err,
			"spec", s.spec)
	}
}
