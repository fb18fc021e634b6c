// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

const namespace = "smartstart"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	QuizCompleted       prometheus.Counter
	BadgesUnlocked      *prometheus.CounterVec
	ActivitiesCompleted *prometheus.CounterVec
	InitialHealthScore  prometheus.Histogram
	SessionsStarted     *prometheus.CounterVec
	SessionsSwept       prometheus.Counter

	EventsPublished  *prometheus.CounterVec
	HandlerDuration  *prometheus.HistogramVec
	HandlerFailures  *prometheus.CounterVec
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

// New creates and registers every collector. Go runtime and process
// collectors are included.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		QuizCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_completed_total",
			Help:      "Quiz runs that seeded progress.",
		}),
		BadgesUnlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "badges_unlocked_total",
			Help:      "Badges unlocked, by badge.",
		}, []string{"badge"}),
		ActivitiesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_completed_total",
			Help:      "First-time module and scenario completions, by kind.",
		}, []string{"kind"}),
		InitialHealthScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "initial_health_score",
			Help:      "Health score seeded at quiz completion.",
			Buckets:   prometheus.LinearBuckets(50, 10, 6),
		}),
		SessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Sessions started, by mode.",
		}, []string{"mode"}),
		SessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Expired sessions removed by the sweeper.",
		}),

		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event_bus",
			Name:      "published_total",
			Help:      "Events published on the bus, by type.",
		}, []string{"type"}),
		HandlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "event_bus",
			Name:      "handler_duration_seconds",
			Help:      "Event handler latency, by type.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"type"}),
		HandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event_bus",
			Name:      "handler_failures_total",
			Help:      "Event handlers that returned an error or panicked, by type.",
		}, []string{"type"}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.QuizCompleted,
		m.BadgesUnlocked,
		m.ActivitiesCompleted,
		m.InitialHealthScore,
		m.SessionsStarted,
		m.SessionsSwept,
		m.EventsPublished,
		m.HandlerDuration,
		m.HandlerFailures,
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ═══════════════════════════════════════════════════════════════════════════
// EVENT BUS OBSERVER
// ═══════════════════════════════════════════════════════════════════════════

// EventPublished implements messaging.Observer.
func (m *Metrics) EventPublished(t shared.EventType) {
	m.EventsPublished.WithLabelValues(string(t)).Inc()
}

// HandlerFinished implements messaging.Observer.
func (m *Metrics) HandlerFinished(t shared.EventType, d time.Duration, err error) {
	m.HandlerDuration.WithLabelValues(string(t)).Observe(d.Seconds())
	if err != nil {
		m.HandlerFailures.WithLabelValues(string(t)).Inc()
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// HTTP
// ═══════════════════════════════════════════════════════════════════════════

// ObserveRequest records one served request. route should be the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
