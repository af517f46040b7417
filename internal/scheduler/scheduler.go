// Package scheduler runs the alert digest cycle on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/jobflow/internal/domain/alert"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// DefaultSpec fires the alert cycle twice an hour
const DefaultSpec = "@every 30m"

// Processor runs one alert cycle
type Processor interface {
	ProcessAlerts(ctx context.Context) (alert.Report, error)
}

// Scheduler wraps robfig/cron and drives the alert cycle
type Scheduler struct {
	cron      *cron.Cron
	processor Processor
	spec      string
	logger    *logging.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler; an empty spec falls back to DefaultSpec
func New(processor Processor, spec string, logger *logging.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Component("scheduler")

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		processor: processor,
		spec:      spec,
		logger:    logger,
	}
}

// Start registers the cycle, starts the cron loop and runs one cycle immediately
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cancel = cancel

	s.cron.Start()
	s.logger.Info("cron started", "spec", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce(ctx)
	}()

	return nil
}

// RunOnce runs a single alert cycle and logs its report
func (s *Scheduler) RunOnce(ctx context.Context) {
	report, err := s.processor.ProcessAlerts(ctx)
	if err != nil {
		s.logger.Error("alert cycle failed", "err", err)
		return
	}
	s.logger.Info("alert cycle complete",
		"checked", report.Checked,
		"sent", report.Sent,
		"removed", report.Removed,
		"failed", report.Failed,
	)
}

// Shutdown stops the cron loop and waits for a running cycle or ctx expiry
func (s *Scheduler) Shutdown(ctx context.Context) error {
	stopped := s.cron.Stop()
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("cron stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
