package query

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/recommendation"
	"github.com/smartstart/smartstart-money/internal/domain/session"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PLAN QUERY
// The personalized starter kit. Nothing here is stored: the plan is derived
// from the quiz answers on every call.
// ══════════════════════════════════════════════════════════════════════════════

// PlanDTO is the personalized action plan.
type PlanDTO struct {
	Youth           bool                            `json:"youth"`
	AgeBracket      quiz.AgeBracket                 `json:"age_bracket"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	QuickWins       []string                        `json:"quick_wins"`
	Resources       []recommendation.Resource       `json:"resources"`
}

// GetPlanHandler handles plan lookups.
type GetPlanHandler struct {
	sessions session.Repository
}

// NewGetPlanHandler creates a new GetPlanHandler.
func NewGetPlanHandler(sessions session.Repository) *GetPlanHandler {
	return &GetPlanHandler{sessions: sessions}
}

// Handle executes the query. It fails with ErrQuizNotCompleted before the
// quiz result was applied.
func (h *GetPlanHandler) Handle(ctx context.Context, q SessionQuery) (*PlanDTO, error) {
	s, err := session.Authenticate(ctx, h.sessions, q.SessionID, q.Token)
	if err != nil {
		return nil, err
	}
	a, err := s.QuizAnswers()
	if err != nil {
		return nil, err
	}
	return &PlanDTO{
		Youth:           a.IsYouth(),
		AgeBracket:      a.Age,
		Recommendations: recommendation.Recommend(a),
		QuickWins:       recommendation.QuickWins(a),
		Resources:       recommendation.Resources(a),
	}, nil
}
