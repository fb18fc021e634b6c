package command

import (
	"context"
	"fmt"

	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// START SESSION COMMAND
// Creates a session with a fresh quiz and hands the bearer token out once.
// ══════════════════════════════════════════════════════════════════════════════

// StartSessionCommand contains the data to start a session.
type StartSessionCommand struct {
	// Mode is "student" or "teacher". Empty defaults to student.
	Mode string
}

// StartSessionResult contains the new session and its plain token.
type StartSessionResult struct {
	Session *session.Session
	Token   string
}

// StartSessionHandler handles StartSessionCommand.
type StartSessionHandler struct {
	writer
}

// NewStartSessionHandler creates a new StartSessionHandler.
func NewStartSessionHandler(
	sessions session.Repository,
	publisher shared.EventPublisher,
	log *logger.Logger,
	cfg Config,
) *StartSessionHandler {
	return &StartSessionHandler{writer: newWriter(sessions, nil, publisher, log, cfg)}
}

// Handle executes the command.
func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error) {
	mode, err := shared.ParseMode(cmd.Mode)
	if err != nil {
		return nil, err
	}

	token, hash, err := session.NewToken(h.cfg.TokenCost)
	if err != nil {
		return nil, fmt.Errorf("start_session: %w", err)
	}

	s, err := session.New(session.NewParams{
		Mode:      mode,
		TokenHash: hash,
		Now:       h.cfg.Now(),
		TTL:       h.cfg.SessionTTL,
	})
	if err != nil {
		return nil, err
	}

	if err := h.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("start_session: create: %w", err)
	}

	h.log.Info("session started", logger.SessionID(s.ID.String()), logger.String("mode", mode.String()))
	h.publish("start_session", []shared.Event{shared.NewSessionStartedEvent(s.ID.String(), mode.String())})

	return &StartSessionResult{Session: s, Token: token}, nil
}
