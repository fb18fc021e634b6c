package shared

import (
	"strings"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// SessionID is a UUID in canonical lower-case form.
type SessionID string

// IsValid reports whether the id is a UUID in canonical form.
func (s SessionID) IsValid() bool {
	u, err := uuid.Parse(string(s))
	return err == nil && u.String() == string(s)
}

// String returns the string representation.
func (s SessionID) String() string {
	return string(s)
}

// IsEmpty checks if the session ID is empty.
func (s SessionID) IsEmpty() bool {
	return s == ""
}

// NewSessionID parses a session identifier. Any form uuid.Parse accepts is
// normalized to the canonical hyphenated form used as the store key.
func NewSessionID(id string) (SessionID, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", WrapError("session", "ParseID", ErrInvalidID, "session id must be a UUID", err)
	}
	return SessionID(u.String()), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Mode
// ═══════════════════════════════════════════════════════════════════════════

// Mode selects between the learner experience and the classroom experience.
type Mode string

const (
	ModeStudent Mode = "student"
	ModeTeacher Mode = "teacher"
)

// IsValid checks if the mode is known.
func (m Mode) IsValid() bool {
	return m == ModeStudent || m == ModeTeacher
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode, defaulting an empty value to ModeStudent.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeStudent, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", ErrInvalidMode
	}
	return m, nil
}
