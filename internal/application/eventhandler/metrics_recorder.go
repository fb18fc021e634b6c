// Package eventhandler contains domain event handlers.
package eventhandler

import (
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/internal/infrastructure/metrics"
)

// ═══════════════════════════════════════════════════════════════════════════
// METRICS RECORDER
// Turns domain events into business counters. Events received from other
// instances are skipped: the instance that produced them already counted.
// ═══════════════════════════════════════════════════════════════════════════

// MetricsRecorder records business metrics from events.
type MetricsRecorder struct {
	metrics *metrics.Metrics
}

// NewMetricsRecorder creates a new MetricsRecorder.
func NewMetricsRecorder(m *metrics.Metrics) *MetricsRecorder {
	return &MetricsRecorder{metrics: m}
}

// Register subscribes the recorder to the events it counts.
func (r *MetricsRecorder) Register(bus shared.EventSubscriber) error {
	for _, t := range []shared.EventType{
		shared.EventSessionStarted,
		shared.EventQuizCompleted,
		shared.EventModuleCompleted,
		shared.EventScenarioCompleted,
		shared.EventBadgeUnlocked,
	} {
		if err := bus.Subscribe(t, r.Handle); err != nil {
			return err
		}
	}
	return nil
}

// Handle implements shared.EventHandler.
func (r *MetricsRecorder) Handle(event shared.Event) error {
	if shared.IsRemote(event) {
		return nil
	}

	switch e := event.(type) {
	case shared.SessionStartedEvent:
		r.metrics.SessionsStarted.WithLabelValues(e.Mode).Inc()
	case shared.QuizCompletedEvent:
		r.metrics.QuizCompleted.Inc()
		r.metrics.InitialHealthScore.Observe(float64(e.HealthScore))
	case shared.ActivityCompletedEvent:
		kind := "module"
		if e.EventType() == shared.EventScenarioCompleted {
			kind = "scenario"
		}
		r.metrics.ActivitiesCompleted.WithLabelValues(kind).Inc()
	case shared.BadgeUnlockedEvent:
		r.metrics.BadgesUnlocked.WithLabelValues(e.Badge).Inc()
	}
	return nil
}
