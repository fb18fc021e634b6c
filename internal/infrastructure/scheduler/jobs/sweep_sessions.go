// Package jobs contains the scheduled maintenance jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/smartstart/smartstart-money/pkg/logger"
)

// Sweeper removes expired sessions. The in-memory store implements it; the
// redis store relies on key TTLs and needs no sweeping.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Counter is satisfied by prometheus.Counter.
type Counter interface {
	Add(float64)
}

// SweepSessionsJob drops expired sessions from the store.
type SweepSessionsJob struct {
	sweeper Sweeper
	swept   Counter
	log     *logger.Logger
}

// NewSweepSessionsJob creates the job. swept may be nil.
func NewSweepSessionsJob(sweeper Sweeper, swept Counter, log *logger.Logger) *SweepSessionsJob {
	if log == nil {
		log = logger.Nop()
	}
	return &SweepSessionsJob{sweeper: sweeper, swept: swept, log: log}
}

// Name implements scheduler.Job.
func (j *SweepSessionsJob) Name() string { return "sweep_sessions" }

// Description implements scheduler.Job.
func (j *SweepSessionsJob) Description() string {
	return "Removes sessions whose TTL has run out"
}

// Run implements scheduler.Job.
func (j *SweepSessionsJob) Run(ctx context.Context) error {
	n, err := j.sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep sessions: %w", err)
	}
	if n > 0 {
		j.log.Info("expired sessions removed", logger.Int("count", n))
		if j.swept != nil {
			j.swept.Add(float64(n))
		}
	}
	return nil
}
