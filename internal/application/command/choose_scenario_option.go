package command

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/catalog"
	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHOOSE SCENARIO OPTION COMMAND
// Resolves a decision in a practice scenario and marks the scenario done.
// Any option completes the scenario; replaying it reveals other outcomes
// without changing progress again.
// ══════════════════════════════════════════════════════════════════════════════

// ChooseScenarioOptionCommand contains the data to pick a scenario option.
type ChooseScenarioOptionCommand struct {
	SessionID  string
	Token      string
	ScenarioID string
	Option     int
}

// ChooseScenarioOptionResult contains the revealed outcome and the progress.
type ChooseScenarioOptionResult struct {
	Outcome catalog.Outcome
	ActivityResult
}

// ChooseScenarioOptionHandler handles ChooseScenarioOptionCommand.
type ChooseScenarioOptionHandler struct {
	writer
	catalog *catalog.Catalog
}

// NewChooseScenarioOptionHandler creates a new ChooseScenarioOptionHandler.
func NewChooseScenarioOptionHandler(
	sessions session.Repository,
	locker *session.Locker,
	cat *catalog.Catalog,
	publisher shared.EventPublisher,
	log *logger.Logger,
	cfg Config,
) *ChooseScenarioOptionHandler {
	return &ChooseScenarioOptionHandler{
		writer:  newWriter(sessions, locker, publisher, log, cfg),
		catalog: cat,
	}
}

// Handle executes the command.
func (h *ChooseScenarioOptionHandler) Handle(ctx context.Context, cmd ChooseScenarioOptionCommand) (*ChooseScenarioOptionResult, error) {
	if cmd.ScenarioID == "" {
		return nil, shared.NewFieldError("progress", "CompleteScenario", "scenario_id", "is required")
	}

	res := &ChooseScenarioOptionResult{}
	s, err := h.mutate(ctx, "choose_scenario_option", cmd.SessionID, cmd.Token, func(s *session.Session) ([]shared.Event, error) {
		answers, err := s.QuizAnswers()
		if err != nil {
			return nil, err
		}
		sc, err := h.catalog.EligibleScenario(cmd.ScenarioID, answers.Age)
		if err != nil {
			return nil, err
		}
		if res.Outcome, err = sc.Choose(cmd.Option); err != nil {
			return nil, err
		}

		before := s.Progress
		if before.HasScenario(sc.ID) {
			res.AlreadyCompleted = true
			return nil, nil
		}
		s.Progress = progress.CompleteScenario(before, sc.ID)

		res.ScoreDelta = s.Progress.FinancialHealthScore - before.FinancialHealthScore
		res.NewBadges = progress.NewBadges(before, s.Progress)

		events := []shared.Event{shared.NewScenarioCompletedEvent(
			s.ID.String(), sc.ID,
			before.FinancialHealthScore, s.Progress.FinancialHealthScore,
			len(s.Progress.ScenariosCompleted),
		)}
		return append(events, badgeEvents(s.ID.String(), before, s.Progress, sc.ID)...), nil
	})
	if err != nil {
		return nil, err
	}

	res.Progress = s.Progress
	if !res.AlreadyCompleted {
		h.log.Info("scenario completed",
			logger.SessionID(s.ID.String()),
			logger.ScenarioID(cmd.ScenarioID),
			logger.Int("option", cmd.Option),
			logger.Score(s.Progress.FinancialHealthScore),
		)
	}
	return res, nil
}
