package sessions

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ticketly/pkg/logger"
)

// CoverageJob periodically ensures showtime coverage for all active titles.
type CoverageJob struct {
	service  Service
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	log      *logger.Logger

	mu      sync.Mutex
	last    *CoverageReport
	started bool
	stopped bool
}

func NewCoverageJob(service Service, interval time.Duration) *CoverageJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CoverageJob{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
		log:      logger.GetDefault(),
	}
}

// Start runs one pass immediately, then one per interval.
func (j *CoverageJob) Start(ctx context.Context) {
	j.mu.Lock()
	if j.started {
		j.mu.Unlock()
		return
	}
	j.started = true
	j.mu.Unlock()

	j.log.Info("Starting session coverage job", slog.Duration("interval", j.interval))

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer j.markStopped()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.runOnce(ctx)
		for {
			select {
			case <-ticker.C:
				j.runOnce(ctx)
			case <-j.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop signals the loop and waits for an in-flight pass to finish.
func (j *CoverageJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
	})
	j.wg.Wait()
	j.log.Info("Session coverage job stopped")
}

func (j *CoverageJob) runOnce(ctx context.Context) {
	start := time.Now()
	report, err := j.service.EnsureAll(ctx)
	if err != nil {
		j.log.ErrorWithContext(ctx, "Session coverage pass failed", err, nil)
		return
	}

	j.mu.Lock()
	j.last = report
	j.mu.Unlock()

	j.log.InfoContext(ctx, "Session coverage pass finished",
		slog.Int("titles", report.Titles),
		slog.Int("created", report.Created),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", time.Since(start)),
	)
}

func (j *CoverageJob) markStopped() {
	j.mu.Lock()
	j.stopped = true
	j.mu.Unlock()
}

// Status reports the job settings and the outcome of the last pass. A job
// that was never started reports "disabled".
func (j *CoverageJob) Status() map[string]interface{} {
	j.mu.Lock()
	defer j.mu.Unlock()

	state := "running"
	switch {
	case !j.started:
		state = "disabled"
	case j.stopped:
		state = "stopped"
	}

	status := map[string]interface{}{
		"interval": j.interval.String(),
		"status":   state,
	}
	if j.last != nil {
		status["last_pass"] = j.last
	}
	return status
}
