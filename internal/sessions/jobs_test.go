package sessions

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type countingService struct {
	passes atomic.Int32
}

func (s *countingService) EnsureSessions(ctx context.Context, movieID uuid.UUID, cinemaID *uuid.UUID) (*EnsureResult, error) {
	return &EnsureResult{MovieID: movieID}, nil
}

func (s *countingService) EnsureAll(ctx context.Context) (*CoverageReport, error) {
	s.passes.Add(1)
	return &CoverageReport{Titles: 3, Created: 6}, nil
}

func (s *countingService) ListSessions(ctx context.Context, movieID uuid.UUID, query SessionListQuery) ([]Session, error) {
	return nil, nil
}

func TestCoverageJob_RunsImmediatelyAndStops(t *testing.T) {
	svc := &countingService{}
	job := NewCoverageJob(svc, time.Hour)

	job.Start(context.Background())
	assert.Eventually(t, func() bool { return svc.passes.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "running", job.Status()["status"])

	job.Stop()
	// a second Stop is a no-op
	job.Stop()

	status := job.Status()
	assert.Equal(t, "stopped", status["status"])
	assert.Equal(t, "1h0m0s", status["interval"])
	assert.Equal(t, &CoverageReport{Titles: 3, Created: 6}, status["last_pass"])
}

func TestCoverageJob_TicksOnInterval(t *testing.T) {
	svc := &countingService{}
	job := NewCoverageJob(svc, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)
	assert.Eventually(t, func() bool { return svc.passes.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	job.Stop()
}

func TestCoverageJob_NeverStartedIsDisabled(t *testing.T) {
	svc := &countingService{}
	job := NewCoverageJob(svc, time.Hour)

	status := job.Status()
	assert.Equal(t, "disabled", status["status"])
	assert.NotContains(t, status, "last_pass")
	assert.Zero(t, svc.passes.Load())
}
