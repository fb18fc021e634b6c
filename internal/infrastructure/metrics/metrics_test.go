package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

func TestObserver(t *testing.T) {
	m := New()

	m.EventPublished(shared.EventQuizCompleted)
	m.EventPublished(shared.EventQuizCompleted)
	m.HandlerFinished(shared.EventQuizCompleted, time.Millisecond, nil)
	m.HandlerFinished(shared.EventQuizCompleted, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("quiz.completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HandlerFailures.WithLabelValues("quiz.completed")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.QuizCompleted.Inc()
	m.ObserveRequest(http.MethodGet, "/api/v1/questions", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "smartstart_quiz_completed_total 1")
	assert.Contains(t, body, `smartstart_http_requests_total{method="GET",route="/api/v1/questions",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.QuizCompleted.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.QuizCompleted))
}
