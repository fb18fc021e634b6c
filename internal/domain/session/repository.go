package session

import (
	"context"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// REPOSITORY
// Implementations live in infrastructure/persistence (memory and redis).
// ═══════════════════════════════════════════════════════════════════════════

// Repository stores sessions until they expire.
type Repository interface {
	// Create stores a new session at version 1.
	// Returns ErrAlreadyExists if the id is taken.
	Create(ctx context.Context, s *Session) error

	// Get returns a copy of the session.
	// Returns ErrSessionNotFound for unknown ids and ErrSessionExpired
	// for sessions past their expiry.
	Get(ctx context.Context, id shared.SessionID) (*Session, error)

	// Save writes s if the stored version still equals s.Version and bumps
	// the version on success. Returns ErrSessionConflict otherwise.
	Save(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id shared.SessionID) error
}

// Authenticate parses rawID, loads the session and verifies the bearer token.
func Authenticate(ctx context.Context, repo Repository, rawID, token string) (*Session, error) {
	id, err := shared.NewSessionID(rawID)
	if err != nil {
		return nil, err
	}
	s, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.VerifyToken(token); err != nil {
		return nil, err
	}
	return s, nil
}
