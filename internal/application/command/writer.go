// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION WRITER
// Every command that changes a session follows the same path:
// lock → load → authenticate → mutate → save → publish.
// ══════════════════════════════════════════════════════════════════════════════

// Config holds the settings shared by the session command handlers.
type Config struct {
	// SessionTTL is how long a session lives after its last write.
	SessionTTL time.Duration

	// TokenCost is the bcrypt cost used for new session tokens.
	TokenCost int

	// Now overrides the clock (tests).
	Now func() time.Time
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		SessionTTL: 2 * time.Hour,
		TokenCost:  10,
		Now:        time.Now,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SessionTTL <= 0 {
		c.SessionTTL = d.SessionTTL
	}
	if c.TokenCost <= 0 {
		c.TokenCost = d.TokenCost
	}
	if c.Now == nil {
		c.Now = d.Now
	}
	return c
}

type writer struct {
	sessions  session.Repository
	locker    *session.Locker
	publisher shared.EventPublisher
	log       *logger.Logger
	cfg       Config
}

func newWriter(
	sessions session.Repository,
	locker *session.Locker,
	publisher shared.EventPublisher,
	log *logger.Logger,
	cfg Config,
) writer {
	if log == nil {
		log = logger.Nop()
	}
	if locker == nil {
		locker = session.NewLocker()
	}
	return writer{
		sessions:  sessions,
		locker:    locker,
		publisher: publisher,
		log:       log,
		cfg:       cfg.withDefaults(),
	}
}

// mutation changes a loaded session and returns the events to publish once
// the change is stored.
type mutation func(s *session.Session) ([]shared.Event, error)

// mutate runs fn under the per-session lock and saves the result. Events are
// published only after a successful save.
func (w writer) mutate(ctx context.Context, op, rawID, token string, fn mutation) (*session.Session, error) {
	id, err := shared.NewSessionID(rawID)
	if err != nil {
		return nil, err
	}

	unlock := w.locker.Lock(id)
	defer unlock()

	s, err := session.Authenticate(ctx, w.sessions, rawID, token)
	if err != nil {
		return nil, err
	}

	events, err := fn(s)
	if err != nil {
		return nil, err
	}

	s.Touch(w.cfg.Now(), w.cfg.SessionTTL)
	if err := w.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("%s: save session: %w", op, err)
	}

	w.publish(op, events)
	return s, nil
}

// publish sends events best effort. A failed publish is logged and never
// fails the command because the session change is already stored.
func (w writer) publish(op string, events []shared.Event) {
	if w.publisher == nil {
		return
	}
	for _, e := range events {
		if err := w.publisher.Publish(e); err != nil {
			w.log.Warn("failed to publish event",
				logger.Operation(op),
				logger.String("event_type", string(e.EventType())),
				logger.SessionID(e.AggregateID()),
				logger.Err(err),
			)
		}
	}
}

// badgeEvents returns one BadgeUnlockedEvent per badge gained between before
// and after.
func badgeEvents(sessionID string, before, after progress.UserProgress, trigger string) []shared.Event {
	var out []shared.Event
	for _, b := range progress.NewBadges(before, after) {
		out = append(out, shared.NewBadgeUnlockedEvent(sessionID, string(b), trigger))
	}
	return out
}
