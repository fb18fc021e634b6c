// Package memory implements in-process repositories. Data is lost on restart,
// which is acceptable for session-scoped state and single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// SessionStore is a session.Repository backed by a map.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[shared.SessionID]*session.Session
	now      func() time.Time
}

// Option configures a SessionStore.
type Option func(*SessionStore)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		s.now = now
	}
}

// NewSessionStore creates an empty store.
func NewSessionStore(opts ...Option) *SessionStore {
	s := &SessionStore{
		sessions: make(map[shared.SessionID]*session.Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements session.Repository.
func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return shared.WrapError("session", "Create", shared.ErrAlreadyExists, "session already exists", nil)
	}
	sess.Version = 1
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Get implements session.Repository.
func (s *SessionStore) Get(ctx context.Context, id shared.SessionID) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	stored, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, shared.ErrSessionNotFound
	}
	if stored.IsExpired(s.now()) {
		return nil, shared.ErrSessionExpired
	}
	return stored.Clone(), nil
}

// Save implements session.Repository.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[sess.ID]
	if !ok || stored.IsExpired(s.now()) {
		return shared.ErrSessionNotFound
	}
	if stored.Version != sess.Version {
		return shared.ErrSessionConflict
	}

	sess.Version++
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Delete implements session.Repository.
func (s *SessionStore) Delete(ctx context.Context, id shared.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SessionStore) Sweep(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ session.Repository = (*SessionStore)(nil)
