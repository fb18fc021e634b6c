package command

import (
	"context"
	"fmt"

	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ STEP COMMAND
// Applies one quiz machine transition. Illegal transitions leave the machine
// unchanged and are not errors. The step into the complete phase seeds the
// session's progress exactly once.
// ══════════════════════════════════════════════════════════════════════════════

// QuizAction names a quiz machine transition.
type QuizAction string

const (
	QuizActionSelectAvatar  QuizAction = "avatar"
	QuizActionAnswer        QuizAction = "answer"
	QuizActionAdvance       QuizAction = "advance"
	QuizActionGoBack        QuizAction = "back"
	QuizActionSelectEmotion QuizAction = "emotion"
)

// QuizStepCommand contains the data for one transition.
type QuizStepCommand struct {
	SessionID string
	Token     string
	Action    QuizAction

	// QuestionID is used by QuizActionAnswer.
	QuestionID string

	// Value is the avatar, answer value or emotion depending on Action.
	Value string
}

// Validate validates the command shape. Values are checked by the machine.
func (c QuizStepCommand) Validate() error {
	switch c.Action {
	case QuizActionAdvance, QuizActionGoBack:
	case QuizActionSelectAvatar, QuizActionSelectEmotion:
		if c.Value == "" {
			return shared.NewFieldError("quiz", string(c.Action), "value", "is required")
		}
	case QuizActionAnswer:
		if c.QuestionID == "" {
			return shared.NewFieldError("quiz", string(c.Action), "question_id", "is required")
		}
		if c.Value == "" {
			return shared.NewFieldError("quiz", string(c.Action), "value", "is required")
		}
	default:
		return shared.NewFieldError("quiz", "Step", "action", fmt.Sprintf("unknown action %q", c.Action))
	}
	return nil
}

func (c QuizStepCommand) step() func(quiz.Machine) quiz.Machine {
	switch c.Action {
	case QuizActionSelectAvatar:
		return func(m quiz.Machine) quiz.Machine { return m.SelectAvatar(c.Value) }
	case QuizActionAnswer:
		return func(m quiz.Machine) quiz.Machine { return m.Answer(quiz.QuestionID(c.QuestionID), c.Value) }
	case QuizActionAdvance:
		return quiz.Machine.Advance
	case QuizActionGoBack:
		return quiz.Machine.GoBack
	default:
		return func(m quiz.Machine) quiz.Machine { return m.SelectEmotion(c.Value) }
	}
}

// QuizStepResult contains the machine view after the transition.
type QuizStepResult struct {
	State quiz.State

	// Completed is true only for the call that finished the quiz.
	Completed bool

	Progress  progress.UserProgress
	NewBadges []progress.BadgeID
	Session   *session.Session
}

// QuizStepHandler handles QuizStepCommand.
type QuizStepHandler struct {
	writer
}

// NewQuizStepHandler creates a new QuizStepHandler.
func NewQuizStepHandler(
	sessions session.Repository,
	locker *session.Locker,
	publisher shared.EventPublisher,
	log *logger.Logger,
	cfg Config,
) *QuizStepHandler {
	return &QuizStepHandler{writer: newWriter(sessions, locker, publisher, log, cfg)}
}

// Handle executes the command.
func (h *QuizStepHandler) Handle(ctx context.Context, cmd QuizStepCommand) (*QuizStepResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		completed bool
		gained    []progress.BadgeID
	)
	s, err := h.mutate(ctx, "quiz_step", cmd.SessionID, cmd.Token, func(s *session.Session) ([]shared.Event, error) {
		before := s.Progress
		done, err := s.Transition(cmd.step())
		if err != nil || !done {
			return nil, err
		}
		completed = true
		gained = progress.NewBadges(before, s.Progress)

		a := *s.Answers
		events := []shared.Event{shared.NewQuizCompletedEvent(
			s.ID.String(), string(a.Age), string(a.Goals), s.Progress.FinancialHealthScore, a.EmotionalState,
		)}
		return append(events, badgeEvents(s.ID.String(), before, s.Progress, "quiz")...), nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		h.log.Info("quiz completed",
			logger.SessionID(s.ID.String()),
			logger.Score(s.Progress.FinancialHealthScore),
		)
	}

	return &QuizStepResult{
		State:     s.Quiz.State(),
		Completed: completed,
		Progress:  s.Progress,
		NewBadges: gained,
		Session:   s,
	}, nil
}
