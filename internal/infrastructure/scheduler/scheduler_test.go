package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string        { return j.name }
func (j *countingJob) Description() string { return "counts runs" }
func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestRegister(t *testing.T) {
	s := New(DefaultConfig())

	require.NoError(t, s.Register(&countingJob{name: "a"}, "@every 1m"))
	assert.ErrorIs(t, s.Register(&countingJob{name: "a"}, "@every 1m"), ErrJobAlreadyExists)
	assert.ErrorIs(t, s.Register(&countingJob{name: "b"}, "every minute"), ErrInvalidSpec)
	assert.ErrorIs(t, s.Register(nil, "@hourly"), ErrNilJob)

	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "@every 1m", jobs[0].Schedule)
}

func TestValidateSpec(t *testing.T) {
	tests := []struct {
		spec string
		ok   bool
	}{
		{"@every 30s", true},
		{"*/5 * * * *", true},
		{"0 */5 * * * *", true},
		{"@hourly", true},
		{"", false},
		{"61 * * * *", false},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			err := ValidateSpec(tt.spec)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSpec)
			}
		})
	}
}

func TestRunNow_RecordsHistory(t *testing.T) {
	s := New(Config{MaxHistorySize: 2})
	ok := &countingJob{name: "ok"}
	bad := &countingJob{name: "bad", err: errors.New("boom")}
	require.NoError(t, s.Register(ok, "@hourly"))
	require.NoError(t, s.Register(bad, "@hourly"))

	res, err := s.RunNow(context.Background(), "ok")
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = s.RunNow(context.Background(), "bad")
	assert.EqualError(t, err, "boom")
	_, err = s.RunNow(context.Background(), "ok")
	require.NoError(t, err)

	_, err = s.RunNow(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)

	history := s.GetHistory(0)
	require.Len(t, history, 2)
	assert.Equal(t, "bad", history[0].JobName)
	assert.Equal(t, "ok", history[1].JobName)

	jobs := s.ListJobs()
	assert.Equal(t, "bad", jobs[0].Name)
	assert.Equal(t, int64(1), jobs[0].FailCount)
	assert.Equal(t, int64(2), jobs[1].RunCount)
}

func TestStartStop_RunsOnSchedule(t *testing.T) {
	s := New(DefaultConfig())
	job := &countingJob{name: "tick"}
	require.NoError(t, s.Register(job, "@every 1s"))

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerAlreadyRunning)
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.ErrorIs(t, s.Stop(), ErrSchedulerNotRunning)
	assert.False(t, s.IsRunning())
}
