package http

import (
	"net/http"

	"github.com/smartstart/smartstart-money/internal/application/command"
	"github.com/smartstart/smartstart-money/internal/application/query"
	"github.com/smartstart/smartstart-money/internal/domain/catalog"
	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/interface/http/handlers"
)

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST / RESPONSE BODIES
// ══════════════════════════════════════════════════════════════════════════════

type modeRequest struct {
	Mode string `json:"mode"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

type emotionRequest struct {
	Emotion string `json:"emotion"`
}

type moduleQuizRequest struct {
	Answer *int `json:"answer"`
}

type choiceRequest struct {
	Option *int `json:"option"`
}

type startSessionResponse struct {
	Session query.SessionDTO `json:"session"`

	// Token is shown once. Clients send it back in X-Session-Token.
	Token string `json:"token"`
}

type quizStepResponse struct {
	State     quiz.State            `json:"state"`
	Completed bool                  `json:"completed"`
	Progress  progress.UserProgress `json:"progress"`
	NewBadges []progress.BadgeID    `json:"new_badges"`
}

type activityResponse struct {
	Progress         progress.UserProgress `json:"progress"`
	AlreadyCompleted bool                  `json:"already_completed"`
	ScoreDelta       int                   `json:"score_delta"`
	NewBadges        []progress.BadgeID    `json:"new_badges"`
}

type choiceResponse struct {
	Outcome catalog.Outcome `json:"outcome"`
	activityResponse
}

func newActivityResponse(res command.ActivityResult) activityResponse {
	return activityResponse{
		Progress:         res.Progress,
		AlreadyCompleted: res.AlreadyCompleted,
		ScoreDelta:       res.ScoreDelta,
		NewBadges:        nonNil(res.NewBadges),
	}
}

func nonNil(b []progress.BadgeID) []progress.BadgeID {
	if b == nil {
		return []progress.BadgeID{}
	}
	return b
}

func sessionQuery(r *http.Request) query.SessionQuery {
	return query.SessionQuery{SessionID: r.PathValue("id"), Token: handlers.SessionToken(r)}
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleStartSession creates a session and its quiz machine. The body is
// optional; mode defaults to student.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.deps.StartSession.Handle(r.Context(), command.StartSessionCommand{Mode: req.Mode})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/sessions/"+res.Session.ID.String())
	writeJSON(w, r, http.StatusCreated, startSessionResponse{
		Session: query.NewSessionDTO(res.Session),
		Token:   res.Token,
	})
}

// handleGetSession returns the session view.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	dto, err := s.deps.GetSession.Handle(r.Context(), sessionQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto)
}

// handleSetMode switches between student and teacher mode.
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	sq := sessionQuery(r)
	sess, err := s.deps.SetMode.Handle(r.Context(), command.SetModeCommand{
		SessionID: sq.SessionID,
		Token:     sq.Token,
		Mode:      req.Mode,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, query.NewSessionDTO(sess))
}

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleQuizAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.quizStep(w, r, command.QuizActionSelectAvatar, "", req.Avatar)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.quizStep(w, r, command.QuizActionAnswer, req.QuestionID, req.Value)
}

func (s *Server) handleQuizAdvance(w http.ResponseWriter, r *http.Request) {
	s.quizStep(w, r, command.QuizActionAdvance, "", "")
}

func (s *Server) handleQuizBack(w http.ResponseWriter, r *http.Request) {
	s.quizStep(w, r, command.QuizActionGoBack, "", "")
}

func (s *Server) handleQuizEmotion(w http.ResponseWriter, r *http.Request) {
	var req emotionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.quizStep(w, r, command.QuizActionSelectEmotion, "", req.Emotion)
}

// quizStep runs one machine transition. Illegal transitions answer 200 with
// the unchanged state.
func (s *Server) quizStep(w http.ResponseWriter, r *http.Request, action command.QuizAction, questionID, value string) {
	sq := sessionQuery(r)
	res, err := s.deps.QuizStep.Handle(r.Context(), command.QuizStepCommand{
		SessionID:  sq.SessionID,
		Token:      sq.Token,
		Action:     action,
		QuestionID: questionID,
		Value:      value,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quizStepResponse{
		State:     res.State,
		Completed: res.Completed,
		Progress:  res.Progress,
		NewBadges: nonNil(res.NewBadges),
	})
}

// handleRetakeQuiz wipes progress and restarts the quiz.
func (s *Server) handleRetakeQuiz(w http.ResponseWriter, r *http.Request) {
	sq := sessionQuery(r)
	sess, err := s.deps.RetakeQuiz.Handle(r.Context(), command.RetakeQuizCommand{
		SessionID: sq.SessionID,
		Token:     sq.Token,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, query.NewSessionDTO(sess))
}

// ══════════════════════════════════════════════════════════════════════════════
// PLAN & DASHBOARD HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.deps.GetPlan.Handle(r.Context(), sessionQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSONWithMeta(w, r, http.StatusOK, plan, &ResponseMeta{TotalCount: len(plan.Recommendations)})
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.deps.GetDashboard.Handle(r.Context(), sessionQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dash)
}

// ══════════════════════════════════════════════════════════════════════════════
// MODULE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := s.deps.Content.ListModules(r.Context(), sessionQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if modules == nil {
		modules = []query.ModuleDTO{}
	}
	writeJSONWithMeta(w, r, http.StatusOK, modules, &ResponseMeta{TotalCount: len(modules)})
}

func (s *Server) handleCompleteModule(w http.ResponseWriter, r *http.Request) {
	sq := sessionQuery(r)
	res, err := s.deps.CompleteModule.Handle(r.Context(), command.CompleteModuleCommand{
		SessionID: sq.SessionID,
		Token:     sq.Token,
		ModuleID:  r.PathValue("moduleID"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newActivityResponse(*res))
}

func (s *Server) handleCheckModuleQuiz(w http.ResponseWriter, r *http.Request) {
	var req moduleQuizRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Answer == nil {
		s.writeError(w, r, missingField("answer"))
		return
	}

	res, err := s.deps.Content.CheckModuleQuiz(r.Context(), query.CheckModuleQuizQuery{
		SessionQuery: sessionQuery(r),
		ModuleID:     r.PathValue("moduleID"),
		Answer:       *req.Answer,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// ══════════════════════════════════════════════════════════════════════════════
// SCENARIO HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.deps.Content.ListScenarios(r.Context(), sessionQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if scenarios == nil {
		scenarios = []query.ScenarioDTO{}
	}
	writeJSONWithMeta(w, r, http.StatusOK, scenarios, &ResponseMeta{TotalCount: len(scenarios)})
}

func (s *Server) handleChooseOption(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Option == nil {
		s.writeError(w, r, missingField("option"))
		return
	}

	sq := sessionQuery(r)
	res, err := s.deps.ChooseOption.Handle(r.Context(), command.ChooseScenarioOptionCommand{
		SessionID:  sq.SessionID,
		Token:      sq.Token,
		ScenarioID: r.PathValue("scenarioID"),
		Option:     *req.Option,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, choiceResponse{
		Outcome:          res.Outcome,
		activityResponse: newActivityResponse(res.ActivityResult),
	})
}
