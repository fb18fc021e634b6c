package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCompositeHealthChecker(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name        string
		setup       func(c *CompositeHealthChecker)
		wantHealthy bool
		wantReady   bool
	}{
		{
			name:        "no checks",
			setup:       func(*CompositeHealthChecker) {},
			wantHealthy: true,
			wantReady:   true,
		},
		{
			name: "all passing",
			setup: func(c *CompositeHealthChecker) {
				c.AddCheck("catalog", ok)
				c.AddReadinessCheck("redis", NewPingCheck(pingerFunc(ok)))
			},
			wantHealthy: true,
			wantReady:   true,
		},
		{
			name: "readiness failure keeps liveness",
			setup: func(c *CompositeHealthChecker) {
				c.AddCheck("catalog", ok)
				c.AddReadinessCheck("redis", down)
			},
			wantHealthy: true,
			wantReady:   false,
		},
		{
			name: "critical failure",
			setup: func(c *CompositeHealthChecker) {
				c.AddCheck("postgres", down)
			},
			wantHealthy: false,
			wantReady:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompositeHealthChecker("test")
			tt.setup(c)

			status := c.Check(context.Background())
			assert.Equal(t, tt.wantHealthy, status.Healthy)
			assert.Equal(t, tt.wantReady, status.Ready)
			assert.Equal(t, "test", status.Version)
		})
	}
}

func TestCompositeHealthChecker_Timeout(t *testing.T) {
	c := NewCompositeHealthChecker("test")
	c.SetTimeout(20 * time.Millisecond)
	c.AddCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	status := c.Check(context.Background())
	require.Contains(t, status.Checks, "slow")
	assert.False(t, status.Checks["slow"].Healthy)
	assert.Contains(t, status.Message, "slow")
}
