package query

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/catalog"
	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/session"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DASHBOARD QUERY
// Score band, badge board and milestones. Available before the quiz is done,
// in which case everything shows as not started.
// ══════════════════════════════════════════════════════════════════════════════

// DashboardDTO is the progress dashboard.
type DashboardDTO struct {
	Score       int                   `json:"financial_health_score"`
	Band        progress.Band         `json:"band"`
	BandMessage string                `json:"band_message"`
	Badges      []progress.BoardEntry `json:"badges"`
	Unlocked    int                   `json:"badges_unlocked"`
	Milestones  []progress.Milestone  `json:"milestones"`
	Modules     ActivityCountDTO      `json:"modules"`
	Scenarios   ActivityCountDTO      `json:"scenarios"`
	Progress    progress.UserProgress `json:"progress"`
}

// ActivityCountDTO compares what was done with what is available.
type ActivityCountDTO struct {
	Completed int `json:"completed"`
	// Available is the number of items eligible for the session's age
	// bracket, or 0 before the quiz is complete.
	Available int `json:"available"`
}

// GetDashboardHandler handles dashboard lookups.
type GetDashboardHandler struct {
	sessions session.Repository
	catalog  *catalog.Catalog
}

// NewGetDashboardHandler creates a new GetDashboardHandler.
func NewGetDashboardHandler(sessions session.Repository, cat *catalog.Catalog) *GetDashboardHandler {
	return &GetDashboardHandler{sessions: sessions, catalog: cat}
}

// Handle executes the query.
func (h *GetDashboardHandler) Handle(ctx context.Context, q SessionQuery) (*DashboardDTO, error) {
	s, err := session.Authenticate(ctx, h.sessions, q.SessionID, q.Token)
	if err != nil {
		return nil, err
	}

	p := s.Progress
	band := progress.BandFor(p.FinancialHealthScore)
	dto := &DashboardDTO{
		Score:      p.FinancialHealthScore,
		Band:       band,
		Badges:     progress.Board(p),
		Unlocked:   len(p.Badges),
		Milestones: progress.Milestones(p),
		Modules:    ActivityCountDTO{Completed: len(p.ModulesCompleted)},
		Scenarios:  ActivityCountDTO{Completed: len(p.ScenariosCompleted)},
		Progress:   p,
	}

	youth := false
	if a, err := s.QuizAnswers(); err == nil {
		youth = a.IsYouth()
		dto.Modules.Available = len(h.catalog.ModulesFor(a.Age))
		dto.Scenarios.Available = len(h.catalog.ScenariosFor(a.Age))
	}
	dto.BandMessage = band.Message(youth)

	return dto, nil
}
