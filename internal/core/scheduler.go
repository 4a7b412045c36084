package core

import (
	"context"
	"time"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"
)

// Scheduler drives the push channel: it samples a snapshot on a fixed
// interval and hands it to the sink. HTTP requests bypass it and sample
// directly.
type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) (domain.Snapshot, error)
	sink     func(domain.Snapshot)
}

func NewScheduler(interval time.Duration, log logger.Logger, sample func(context.Context) (domain.Snapshot, error), sink func(domain.Snapshot)) *Scheduler {
	return &Scheduler{interval: interval, log: log, sample: sample, sink: sink}
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
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}

	snap, err := s.sample(ctx)
	if err != nil {
		s.log.Error("scheduler: sample failed", "error", err)
		return
	}

	s.sink(snap)
}
