// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"time"

	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SESSION QUERY
// ══════════════════════════════════════════════════════════════════════════════

// SessionQuery identifies and authenticates a session. Every session-scoped
// query embeds it.
type SessionQuery struct {
	SessionID string
	Token     string
}

// SessionDTO is the client view of a session. The token hash never leaves
// the service.
type SessionDTO struct {
	ID        string                `json:"id"`
	Mode      shared.Mode           `json:"mode"`
	Quiz      quiz.State            `json:"quiz"`
	Answers   *quiz.Answers         `json:"answers,omitempty"`
	Progress  progress.UserProgress `json:"progress"`
	Version   int64                 `json:"version"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// NewSessionDTO builds the client view of s.
func NewSessionDTO(s *session.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID.String(),
		Mode:      s.Mode,
		Quiz:      s.Quiz.State(),
		Answers:   s.Answers,
		Progress:  s.Progress,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// GetSessionHandler handles session lookups.
type GetSessionHandler struct {
	sessions session.Repository
}

// NewGetSessionHandler creates a new GetSessionHandler.
func NewGetSessionHandler(sessions session.Repository) *GetSessionHandler {
	return &GetSessionHandler{sessions: sessions}
}

// Handle executes the query.
func (h *GetSessionHandler) Handle(ctx context.Context, q SessionQuery) (*SessionDTO, error) {
	s, err := session.Authenticate(ctx, h.sessions, q.SessionID, q.Token)
	if err != nil {
		return nil, err
	}
	dto := NewSessionDTO(s)
	return &dto, nil
}
