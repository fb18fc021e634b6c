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
// COMPLETE MODULE COMMAND
// Marks a learning module as done. Completing the same module again returns
// the unchanged progress and publishes nothing.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteModuleCommand contains the data to complete a module.
type CompleteModuleCommand struct {
	SessionID string
	Token     string
	ModuleID  string
}

// ActivityResult is the outcome of completing a module or scenario.
type ActivityResult struct {
	Progress progress.UserProgress

	// AlreadyCompleted is true when the activity was done before this call.
	AlreadyCompleted bool

	ScoreDelta int
	NewBadges  []progress.BadgeID
}

// CompleteModuleHandler handles CompleteModuleCommand.
type CompleteModuleHandler struct {
	writer
	catalog *catalog.Catalog
}

// NewCompleteModuleHandler creates a new CompleteModuleHandler.
func NewCompleteModuleHandler(
	sessions session.Repository,
	locker *session.Locker,
	cat *catalog.Catalog,
	publisher shared.EventPublisher,
	log *logger.Logger,
	cfg Config,
) *CompleteModuleHandler {
	return &CompleteModuleHandler{
		writer:  newWriter(sessions, locker, publisher, log, cfg),
		catalog: cat,
	}
}

// Handle executes the command.
func (h *CompleteModuleHandler) Handle(ctx context.Context, cmd CompleteModuleCommand) (*ActivityResult, error) {
	if cmd.ModuleID == "" {
		return nil, shared.NewFieldError("progress", "CompleteModule", "module_id", "is required")
	}

	res := &ActivityResult{}
	s, err := h.mutate(ctx, "complete_module", cmd.SessionID, cmd.Token, func(s *session.Session) ([]shared.Event, error) {
		answers, err := s.QuizAnswers()
		if err != nil {
			return nil, err
		}
		if _, err := h.catalog.EligibleModule(cmd.ModuleID, answers.Age); err != nil {
			return nil, err
		}

		before := s.Progress
		if before.HasModule(cmd.ModuleID) {
			res.AlreadyCompleted = true
			return nil, nil
		}
		s.Progress = progress.CompleteModule(before, cmd.ModuleID)

		res.ScoreDelta = s.Progress.FinancialHealthScore - before.FinancialHealthScore
		res.NewBadges = progress.NewBadges(before, s.Progress)

		events := []shared.Event{shared.NewModuleCompletedEvent(
			s.ID.String(), cmd.ModuleID,
			before.FinancialHealthScore, s.Progress.FinancialHealthScore,
			len(s.Progress.ModulesCompleted),
		)}
		return append(events, badgeEvents(s.ID.String(), before, s.Progress, cmd.ModuleID)...), nil
	})
	if err != nil {
		return nil, err
	}

	res.Progress = s.Progress
	if !res.AlreadyCompleted {
		h.log.Info("module completed",
			logger.SessionID(s.ID.String()),
			logger.ModuleID(cmd.ModuleID),
			logger.Score(s.Progress.FinancialHealthScore),
		)
	}
	return res, nil
}
