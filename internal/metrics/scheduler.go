package metrics

import (
	"context"
	"time"

	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

// Scheduler runs sample then sink once immediately and then on every tick.
// Cycles never overlap; a tick that fires while a cycle runs is dropped.
type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) domain.Snapshot
	sink     func(context.Context, domain.Snapshot)
}

func NewScheduler(interval time.Duration, log logger.Logger, sample func(context.Context) domain.Snapshot, sink func(context.Context, domain.Snapshot)) *Scheduler {
	return &Scheduler{
		interval: interval,
		log:      log,
		sample:   sample,
		sink:     sink,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.log.Debug("scheduler stopped", "reason", ctx.Err())
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil || ctx.Err() != nil {
		return
	}

	snap := s.sample(ctx)
	s.sink(ctx, snap)
}
