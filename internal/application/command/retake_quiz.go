package command

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RETAKE QUIZ COMMAND
// Resets progress to the zero aggregate and starts a new quiz run.
// Completing the new run seeds progress again from scratch.
// ══════════════════════════════════════════════════════════════════════════════

// RetakeQuizCommand contains the data to retake the quiz.
type RetakeQuizCommand struct {
	SessionID string
	Token     string
}

// RetakeQuizHandler handles RetakeQuizCommand.
type RetakeQuizHandler struct {
	writer
}

// NewRetakeQuizHandler creates a new RetakeQuizHandler.
func NewRetakeQuizHandler(
	sessions session.Repository,
	locker *session.Locker,
	publisher shared.EventPublisher,
	log *logger.Logger,
	cfg Config,
) *RetakeQuizHandler {
	return &RetakeQuizHandler{writer: newWriter(sessions, locker, publisher, log, cfg)}
}

// Handle executes the command.
func (h *RetakeQuizHandler) Handle(ctx context.Context, cmd RetakeQuizCommand) (*session.Session, error) {
	return h.mutate(ctx, "retake_quiz", cmd.SessionID, cmd.Token, func(s *session.Session) ([]shared.Event, error) {
		prev := s.Progress
		s.Retake()
		return []shared.Event{
			shared.NewProgressResetEvent(s.ID.String(), prev.FinancialHealthScore, len(prev.Badges)),
		}, nil
	})
}
