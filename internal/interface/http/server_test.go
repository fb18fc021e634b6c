package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartstart/smartstart-money/internal/application/command"
	"github.com/smartstart/smartstart-money/internal/application/eventhandler"
	"github.com/smartstart/smartstart-money/internal/application/query"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	catalogsrc "github.com/smartstart/smartstart-money/internal/infrastructure/catalog"
	"github.com/smartstart/smartstart-money/internal/infrastructure/messaging"
	"github.com/smartstart/smartstart-money/internal/infrastructure/metrics"
	"github.com/smartstart/smartstart-money/internal/infrastructure/persistence/memory"
	"github.com/smartstart/smartstart-money/internal/interface/http/handlers"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	metrics *metrics.Metrics
}

func newTestAPI(t *testing.T, cfg Config) *testAPI {
	t.Helper()

	cat, err := catalogsrc.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	m := metrics.New()
	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{Logger: logger.Nop(), Observer: m})
	t.Cleanup(func() { _ = bus.Close() })
	require.NoError(t, eventhandler.NewMetricsRecorder(m).Register(bus))

	store := memory.NewSessionStore()
	locker := session.NewLocker()
	log := logger.Nop()
	cmdCfg := command.Config{SessionTTL: time.Hour, TokenCost: bcrypt.MinCost}

	srv := NewServer(cfg, Dependencies{
		StartSession:   command.NewStartSessionHandler(store, bus, log, cmdCfg),
		SetMode:        command.NewSetModeHandler(store, locker, log, cmdCfg),
		QuizStep:       command.NewQuizStepHandler(store, locker, bus, log, cmdCfg),
		RetakeQuiz:     command.NewRetakeQuizHandler(store, locker, bus, log, cmdCfg),
		CompleteModule: command.NewCompleteModuleHandler(store, locker, cat, bus, log, cmdCfg),
		ChooseOption:   command.NewChooseScenarioOptionHandler(store, locker, cat, bus, log, cmdCfg),
		GetSession:     query.NewGetSessionHandler(store),
		GetPlan:        query.NewGetPlanHandler(store),
		GetDashboard:   query.NewGetDashboardHandler(store, cat),
		Content:        query.NewContentHandler(store, cat),
		Metrics:        m,
		Logger:         log,
	})
	return &testAPI{t: t, handler: srv.Handler(), metrics: m}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0
	return cfg
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *APIError       `json:"error"`
	RequestID string          `json:"request_id"`
}

func (a *testAPI) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(handlers.SessionTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (a *testAPI) start() (string, string) {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/sessions", "", map[string]string{"mode": "student"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decodeData[startSessionResponse](a.t, env)
	require.NotEmpty(a.t, res.Token)
	assert.Equal(a.t, "/api/v1/sessions/"+res.Session.ID, rec.Header().Get("Location"))
	return res.Session.ID, res.Token
}

func (a *testAPI) finishQuiz(id, token string, answers quiz.Answers) quizStepResponse {
	a.t.Helper()
	base := "/api/v1/sessions/" + id + "/quiz/"

	step := func(path string, body interface{}) quizStepResponse {
		rec, env := a.do(http.MethodPost, base+path, token, body)
		require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
		return decodeData[quizStepResponse](a.t, env)
	}

	res := step("avatar", map[string]string{"avatar": "avatar3"})
	for i := 0; i < quiz.QuestionCount; i++ {
		if res.State.Phase == quiz.PhaseEmotionalCheckin {
			step("emotion", map[string]string{"emotion": "okay"})
		}
		q, _ := quiz.QuestionAt(i)
		step("answers", map[string]string{"question_id": string(q.ID), "value": answers.Get(q.ID)})
		res = step("advance", nil)
	}
	require.True(a.t, res.Completed)
	return res
}

func teenAnswers() quiz.Answers {
	return quiz.Answers{
		Age:        quiz.Age13to17,
		Income:     quiz.IncomeNone,
		Savings:    quiz.SavingsNone,
		Debt:       quiz.DebtNone,
		Goals:      quiz.GoalLearn,
		Experience: quiz.ExperienceNew,
	}
}

func TestAPI_FullJourney(t *testing.T) {
	api := newTestAPI(t, testConfig())
	id, token := api.start()
	base := "/api/v1/sessions/" + id

	rec, _ := api.do(http.MethodGet, base+"/plan", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "plan needs a finished quiz")

	done := api.finishQuiz(id, token, teenAnswers())
	assert.Equal(t, 65, done.Progress.FinancialHealthScore)
	assert.Equal(t, quiz.PhaseComplete, done.State.Phase)

	rec, env := api.do(http.MethodGet, base+"/plan", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodeData[query.PlanDTO](t, env)
	assert.True(t, plan.Youth)
	assert.NotEmpty(t, plan.Recommendations)

	rec, env = api.do(http.MethodGet, base+"/modules", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "correct_answer")

	rec, env = api.do(http.MethodPost, base+"/modules/emergency-fund-basics/quiz", token, map[string]int{"answer": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"correct":true`)

	rec, env = api.do(http.MethodPost, base+"/modules/emergency-fund-basics/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	act := decodeData[activityResponse](t, env)
	assert.Equal(t, 8, act.ScoreDelta)
	assert.Equal(t, 73, act.Progress.FinancialHealthScore)

	rec, env = api.do(http.MethodPost, base+"/scenarios/impulse-buy/choices", token, map[string]int{"option": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	choice := decodeData[choiceResponse](t, env)
	assert.Equal(t, 0, choice.Outcome.Option)
	assert.Equal(t, 78, choice.Progress.FinancialHealthScore)

	rec, env = api.do(http.MethodGet, base+"/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decodeData[query.DashboardDTO](t, env)
	assert.Equal(t, 78, dash.Score)
	assert.Equal(t, 1, dash.Modules.Completed)
	assert.Equal(t, 1, dash.Scenarios.Completed)

	rec, env = api.do(http.MethodPost, base+"/quiz/retake", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeData[query.SessionDTO](t, env)
	assert.False(t, view.Progress.QuizCompleted)
	assert.Equal(t, quiz.PhaseAvatarSelect, view.Quiz.Phase)

	assert.Equal(t, 1.0, testutil.ToFloat64(api.metrics.QuizCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(api.metrics.ActivitiesCompleted.WithLabelValues("module")))
}

func TestAPI_ErrorStatuses(t *testing.T) {
	api := newTestAPI(t, testConfig())
	id, token := api.start()
	api.finishQuiz(id, token, teenAnswers())
	base := "/api/v1/sessions/" + id

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     interface{}
		wantCode int
		wantErr  string
	}{
		{"missing token", http.MethodGet, base, "", nil, http.StatusUnauthorized, "unauthorized"},
		{"wrong token", http.MethodGet, base, "nope", nil, http.StatusUnauthorized, "unauthorized"},
		{"unknown session", http.MethodGet, "/api/v1/sessions/6f1c2b1e-8a4d-4c55-9a43-1d2e3f4a5b6c", token, nil, http.StatusNotFound, "not_found"},
		{"malformed id", http.MethodGet, "/api/v1/sessions/abc", token, nil, http.StatusBadRequest, "validation_error"},
		{"bad mode", http.MethodPut, base + "/mode", token, map[string]string{"mode": "admin"}, http.StatusBadRequest, "validation_error"},
		{"unknown field", http.MethodPut, base + "/mode", token, map[string]string{"role": "teacher"}, http.StatusBadRequest, "validation_error"},
		{"ineligible module", http.MethodPost, base + "/modules/credit-cards-101/complete", token, nil, http.StatusForbidden, "forbidden"},
		{"unknown module", http.MethodPost, base + "/modules/crypto-101/complete", token, nil, http.StatusNotFound, "not_found"},
		{"quiz of ineligible module", http.MethodPost, base + "/modules/credit-cards-101/quiz", token, map[string]int{"answer": 0}, http.StatusForbidden, "forbidden"},
		{"missing option", http.MethodPost, base + "/scenarios/impulse-buy/choices", token, map[string]string{}, http.StatusBadRequest, "validation_error"},
		{"option out of range", http.MethodPost, base + "/scenarios/impulse-buy/choices", token, map[string]int{"option": 7}, http.StatusBadRequest, "validation_error"},
		{"ineligible scenario", http.MethodPost, base + "/scenarios/subscription-trap/choices", token, map[string]int{"option": 0}, http.StatusForbidden, "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(tt.method, tt.path, tt.token, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			require.NotNil(t, env.Error)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantErr, env.Error.Code)
			assert.NotEmpty(t, env.RequestID)
		})
	}
}

func TestAPI_SetMode(t *testing.T) {
	api := newTestAPI(t, testConfig())
	id, token := api.start()

	rec, env := api.do(http.MethodPut, "/api/v1/sessions/"+id+"/mode", token, map[string]string{"mode": "teacher"})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeData[query.SessionDTO](t, env)
	assert.Equal(t, shared.ModeTeacher, view.Mode)
}

func TestAPI_IllegalQuizStepIsNotAnError(t *testing.T) {
	api := newTestAPI(t, testConfig())
	id, token := api.start()

	rec, env := api.do(http.MethodPost, "/api/v1/sessions/"+id+"/quiz/advance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeData[quizStepResponse](t, env)
	assert.Equal(t, quiz.PhaseAvatarSelect, res.State.Phase)
	assert.False(t, res.Completed)
}

func TestAPI_QuestionsAndHealth(t *testing.T) {
	api := newTestAPI(t, testConfig())

	rec, env := api.do(http.MethodGet, "/api/v1/questions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	qs := decodeData[query.QuestionsDTO](t, env)
	assert.Len(t, qs.Questions, quiz.QuestionCount)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec, _ = api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec, _ = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `smartstart_http_requests_total{method="GET",route="GET /api/v1/questions",status="200"} 1`)
}

func TestAPI_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	cfg.RateLimitBurst = 2
	api := newTestAPI(t, cfg)

	for i := 0; i < 2; i++ {
		rec, _ := api.do(http.MethodGet, "/health/live", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, env := api.do(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limit_exceeded", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestAPI_RateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	cfg.RateLimitBurst = 2
	api := newTestAPI(t, cfg)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.RemoteAddr = "203.0.113.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.1.1.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("2.2.2.%d", i+1))
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestAPI_RateLimitKeysForwardedClientBehindTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	cfg.RateLimitBurst = 1
	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	api := newTestAPI(t, cfg)

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
}

func TestServer_ClientIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "no proxies configured",
			remote:  "203.0.113.9:1234",
			headers: map[string]string{"X-Forwarded-For": "1.1.1.1", "X-Real-IP": "2.2.2.2"},
			want:    "203.0.113.9",
		},
		{
			name:    "untrusted peer",
			trusted: []string{"10.0.0.0/8"},
			remote:  "203.0.113.9:1234",
			headers: map[string]string{"X-Forwarded-For": "1.1.1.1"},
			want:    "203.0.113.9",
		},
		{
			name:    "trusted peer uses rightmost untrusted hop",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.5:1234",
			headers: map[string]string{"X-Forwarded-For": "6.6.6.6, 198.51.100.7, 10.0.0.4"},
			want:    "198.51.100.7",
		},
		{
			name:    "trusted peer with real ip header",
			trusted: []string{"10.0.0.5"},
			remote:  "10.0.0.5:1234",
			headers: map[string]string{"X-Real-IP": "198.51.100.8"},
			want:    "198.51.100.8",
		},
		{
			name:    "trusted peer with garbage header",
			trusted: []string{"10.0.0.5"},
			remote:  "10.0.0.5:1234",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:    "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.TrustedProxies = tt.trusted
			srv := NewServer(cfg, Dependencies{Logger: logger.Nop()})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, srv.clientIP(req))
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{shared.ErrSessionExpired, http.StatusNotFound},
		{shared.ErrSessionNotFound, http.StatusNotFound},
		{shared.ErrInvalidToken, http.StatusUnauthorized},
		{shared.ErrNotEligible, http.StatusForbidden},
		{shared.ErrQuizNotCompleted, http.StatusConflict},
		{shared.ErrSessionConflict, http.StatusConflict},
		{shared.ErrOptionOutOfRange, http.StatusBadRequest},
		{shared.ErrCatalogSourceFailed, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got, _ := statusFor(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := NewServer(testConfig(), Dependencies{Logger: logger.Nop()})
	h := srv.recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_server_error")
}
