// Package session holds the per-visitor aggregate: the quiz machine, the
// answers it produced and the progress built on top of them. A session is
// the only mutable state in the service and lives until its TTL runs out.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// Session is the aggregate root.
type Session struct {
	ID        shared.SessionID `json:"id"`
	TokenHash []byte           `json:"token_hash"`
	Mode      shared.Mode      `json:"mode"`

	Quiz quiz.Machine `json:"quiz"`
	// Answers is set once the quiz result has been handed to progress.
	Answers  *quiz.Answers         `json:"answers,omitempty"`
	Progress progress.UserProgress `json:"progress"`

	// Version is bumped by the repository on every successful save.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewParams are the inputs of New.
type NewParams struct {
	Mode      shared.Mode
	TokenHash []byte
	Now       time.Time
	TTL       time.Duration
}

// New starts a session with a fresh quiz and empty progress.
func New(p NewParams) (*Session, error) {
	if !p.Mode.IsValid() {
		return nil, shared.ErrInvalidMode
	}
	if len(p.TokenHash) == 0 {
		return nil, shared.NewFieldError("session", "New", "token_hash", "token hash is required")
	}
	if p.TTL <= 0 {
		return nil, shared.NewFieldError("session", "New", "ttl", "ttl must be positive")
	}
	now := p.Now.UTC()
	return &Session{
		ID:        shared.SessionID(uuid.NewString()),
		TokenHash: p.TokenHash,
		Mode:      p.Mode,
		Quiz:      quiz.Start(),
		Progress:  progress.Reset(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(p.TTL),
	}, nil
}

// IsExpired reports whether the session outlived its TTL at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Touch records activity and slides the expiry forward.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.UpdatedAt = now.UTC()
	s.ExpiresAt = s.UpdatedAt.Add(ttl)
}

// SetMode switches between the student and teacher experience.
func (s *Session) SetMode(m shared.Mode) error {
	if !m.IsValid() {
		return shared.ErrInvalidMode
	}
	s.Mode = m
	return nil
}

// Transition applies a quiz transition. When it moves the machine into the
// complete phase the result is handed to progress, which happens at most once
// per quiz run. completed reports whether this call did the hand-off.
func (s *Session) Transition(step func(quiz.Machine) quiz.Machine) (completed bool, err error) {
	wasComplete := s.Quiz.IsComplete()
	next := step(s.Quiz)

	if wasComplete || !next.IsComplete() {
		s.Quiz = next
		return false, nil
	}

	answers, err := next.Result()
	if err != nil {
		return false, err
	}
	p, err := progress.CompleteQuiz(s.Progress, answers)
	if err != nil {
		return false, err
	}

	s.Quiz = next
	s.Answers = &answers
	s.Progress = p
	return true, nil
}

// QuizAnswers returns the applied quiz answers or ErrQuizNotCompleted.
func (s *Session) QuizAnswers() (quiz.Answers, error) {
	if s.Answers == nil {
		return quiz.Answers{}, shared.ErrQuizNotCompleted
	}
	return *s.Answers, nil
}

// Retake clears progress and starts a new quiz run.
func (s *Session) Retake() {
	s.Progress = progress.Reset()
	s.Quiz = quiz.Start()
	s.Answers = nil
}

// Clone returns a deep copy. Stores hand out clones so callers never share
// memory with the stored aggregate.
func (s *Session) Clone() *Session {
	c := *s
	c.TokenHash = append([]byte(nil), s.TokenHash...)
	if s.Answers != nil {
		a := *s.Answers
		c.Answers = &a
	}
	c.Progress.Badges = append([]progress.BadgeID{}, s.Progress.Badges...)
	c.Progress.ModulesCompleted = append([]string{}, s.Progress.ModulesCompleted...)
	c.Progress.ScenariosCompleted = append([]string{}, s.Progress.ScenariosCompleted...)
	c.Progress.Achievements = append([]progress.Achievement{}, s.Progress.Achievements...)
	return &c
}
