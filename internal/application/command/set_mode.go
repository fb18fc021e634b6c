package command

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// SetModeCommand switches a session between student and teacher mode.
type SetModeCommand struct {
	SessionID string
	Token     string
	Mode      string
}

// SetModeHandler handles SetModeCommand.
type SetModeHandler struct {
	writer
}

// NewSetModeHandler creates a new SetModeHandler.
func NewSetModeHandler(
	sessions session.Repository,
	locker *session.Locker,
	log *logger.Logger,
	cfg Config,
) *SetModeHandler {
	return &SetModeHandler{writer: newWriter(sessions, locker, nil, log, cfg)}
}

// Handle executes the command.
func (h *SetModeHandler) Handle(ctx context.Context, cmd SetModeCommand) (*session.Session, error) {
	if cmd.Mode == "" {
		return nil, shared.NewFieldError("session", "SetMode", "mode", "is required")
	}
	mode, err := shared.ParseMode(cmd.Mode)
	if err != nil {
		return nil, err
	}
	return h.mutate(ctx, "set_mode", cmd.SessionID, cmd.Token, func(s *session.Session) ([]shared.Event, error) {
		return nil, s.SetMode(mode)
	})
}
