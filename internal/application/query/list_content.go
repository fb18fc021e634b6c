package query

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/catalog"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTENT QUERIES
// Modules and scenarios eligible for the session's age bracket, flagged with
// completion. Answers and outcomes stay hidden until the user commits.
// ══════════════════════════════════════════════════════════════════════════════

// ModuleDTO is a module with its completion flag.
type ModuleDTO struct {
	catalog.Module
	Completed bool `json:"completed"`
	HasQuiz   bool `json:"has_quiz"`
}

// ScenarioDTO is a scenario with its completion flag.
type ScenarioDTO struct {
	catalog.Scenario
	Completed bool `json:"completed"`
}

// ContentHandler serves the catalog scoped to a session.
type ContentHandler struct {
	sessions session.Repository
	catalog  *catalog.Catalog
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(sessions session.Repository, cat *catalog.Catalog) *ContentHandler {
	return &ContentHandler{sessions: sessions, catalog: cat}
}

// ListModules returns the eligible modules in catalog order.
func (h *ContentHandler) ListModules(ctx context.Context, q SessionQuery) ([]ModuleDTO, error) {
	s, a, err := h.load(ctx, q)
	if err != nil {
		return nil, err
	}
	modules := h.catalog.ModulesFor(a)
	out := make([]ModuleDTO, 0, len(modules))
	for _, m := range modules {
		out = append(out, ModuleDTO{
			Module:    m,
			Completed: s.Progress.HasModule(m.ID),
			HasQuiz:   m.Content.Quiz != nil,
		})
	}
	return out, nil
}

// ListScenarios returns the eligible scenarios in catalog order.
func (h *ContentHandler) ListScenarios(ctx context.Context, q SessionQuery) ([]ScenarioDTO, error) {
	s, a, err := h.load(ctx, q)
	if err != nil {
		return nil, err
	}
	scenarios := h.catalog.ScenariosFor(a)
	out := make([]ScenarioDTO, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, ScenarioDTO{Scenario: sc, Completed: s.Progress.HasScenario(sc.ID)})
	}
	return out, nil
}

// CheckModuleQuizQuery grades an answer to a module's check question.
type CheckModuleQuizQuery struct {
	SessionQuery
	ModuleID string
	Answer   int
}

// CheckModuleQuiz grades the answer. It changes nothing: completing the
// module is a separate command.
func (h *ContentHandler) CheckModuleQuiz(ctx context.Context, q CheckModuleQuizQuery) (*catalog.QuizResult, error) {
	_, age, err := h.load(ctx, q.SessionQuery)
	if err != nil {
		return nil, err
	}
	m, err := h.catalog.EligibleModule(q.ModuleID, age)
	if err != nil {
		return nil, err
	}
	if m.Content.Quiz == nil {
		return nil, shared.ErrModuleHasNoQuiz
	}
	res, err := m.Content.Quiz.Check(q.Answer)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (h *ContentHandler) load(ctx context.Context, q SessionQuery) (*session.Session, quiz.AgeBracket, error) {
	s, err := session.Authenticate(ctx, h.sessions, q.SessionID, q.Token)
	if err != nil {
		return nil, "", err
	}
	a, err := s.QuizAnswers()
	if err != nil {
		return nil, "", err
	}
	return s, a.Age, nil
}
