package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// Phase is the coarse state of the quiz machine.
type Phase string

const (
	PhaseAvatarSelect     Phase = "avatar_select"
	PhaseQuestion         Phase = "question"
	PhaseEmotionalCheckin Phase = "emotional_checkin"
	PhaseComplete         Phase = "complete"
)

// IsValid reports whether p is a known phase.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseAvatarSelect, PhaseQuestion, PhaseEmotionalCheckin, PhaseComplete:
		return true
	}
	return false
}

// Machine is the quiz intake state machine. It is a value: every transition
// returns a new Machine and illegal transitions return the receiver unchanged.
// The zero Machine is equivalent to Start().
type Machine struct {
	phase   Phase
	index   int
	answers Answers
	// encourageAt is the question index whose answer triggered the current
	// encouragement message, or -1.
	encourageAt int
}

// Start returns the initial machine, waiting for an avatar.
func Start() Machine {
	return Machine{phase: PhaseAvatarSelect, encourageAt: -1}
}

func (m Machine) normalized() Machine {
	if m.phase == "" {
		return Start()
	}
	return m
}

// Phase returns the current phase.
func (m Machine) Phase() Phase {
	return m.normalized().phase
}

// Index returns the current question index, -1 before the first question.
func (m Machine) Index() int {
	m = m.normalized()
	if m.phase == PhaseAvatarSelect {
		return -1
	}
	return m.index
}

// Answers returns the answers recorded so far.
func (m Machine) Answers() Answers {
	return m.answers
}

// IsComplete reports whether the machine reached its terminal state.
func (m Machine) IsComplete() bool {
	return m.Phase() == PhaseComplete
}

// SelectAvatar records the avatar and moves to the first question.
func (m Machine) SelectAvatar(avatar string) Machine {
	m = m.normalized()
	if m.phase != PhaseAvatarSelect || avatar == "" {
		return m
	}
	m.answers.Avatar = avatar
	m.phase = PhaseQuestion
	m.index = 0
	m.encourageAt = -1
	return m.settle()
}

// Answer records value for the current question. Re-answering overwrites.
// The question id must match the current question and the value must be one
// of its options.
func (m Machine) Answer(id QuestionID, value string) Machine {
	m = m.normalized()
	if m.phase != PhaseQuestion {
		return m
	}
	q, ok := QuestionAt(m.index)
	if !ok || q.ID != id {
		return m
	}
	next, ok := m.answers.With(id, value)
	if !ok {
		return m
	}
	m.answers = next
	m.encourageAt = m.index
	return m
}

// CanAdvance reports whether Advance would change the state.
func (m Machine) CanAdvance() bool {
	m = m.normalized()
	if m.phase != PhaseQuestion {
		return false
	}
	q, ok := QuestionAt(m.index)
	return ok && m.answers.Get(q.ID) != ""
}

// Advance moves past an answered question. On the last question it completes
// the quiz. Landing on the check-in index without an emotional state shows
// the check-in first.
func (m Machine) Advance() Machine {
	m = m.normalized()
	if !m.CanAdvance() {
		return m
	}
	m.encourageAt = -1
	if m.index == QuestionCount-1 {
		m.phase = PhaseComplete
		return m
	}
	m.index++
	return m.settle()
}

// SelectEmotion records the check-in answer and resumes the question flow.
func (m Machine) SelectEmotion(emotion string) Machine {
	m = m.normalized()
	if m.phase != PhaseEmotionalCheckin || emotion == "" {
		return m
	}
	m.answers.EmotionalState = emotion
	m.phase = PhaseQuestion
	return m
}

// CanGoBack reports whether GoBack would change the state.
func (m Machine) CanGoBack() bool {
	return m.Phase() == PhaseQuestion
}

// GoBack returns to the previous question, or to avatar selection from the
// first question. Recorded answers are kept.
func (m Machine) GoBack() Machine {
	m = m.normalized()
	if m.phase != PhaseQuestion {
		return m
	}
	m.encourageAt = -1
	if m.index == 0 {
		m.phase = PhaseAvatarSelect
		return m
	}
	m.index--
	return m.settle()
}

// settle shows the check-in when the machine stands on the check-in index and
// no emotional state is recorded yet. Presence of the value is the gate, so
// cycling around the midpoint never shows it twice.
func (m Machine) settle() Machine {
	if m.phase == PhaseQuestion && m.index == CheckinIndex && m.answers.EmotionalState == "" {
		m.phase = PhaseEmotionalCheckin
	}
	return m
}

// Result returns the completed answers. It fails unless the machine is
// complete and every required field is present.
func (m Machine) Result() (Answers, error) {
	if !m.IsComplete() {
		return Answers{}, shared.NewDomainError("quiz", "Result", shared.ErrInvalidState, "quiz is not complete")
	}
	if err := m.answers.Validate(); err != nil {
		return Answers{}, err
	}
	return m.answers, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

// State is a read-only view of the machine for clients.
type State struct {
	Phase         Phase      `json:"phase"`
	QuestionIndex int        `json:"question_index"`
	QuestionID    QuestionID `json:"question_id,omitempty"`
	Options       []string   `json:"options,omitempty"`
	Answer        string     `json:"answer,omitempty"`
	CanAdvance    bool       `json:"can_advance"`
	CanGoBack     bool       `json:"can_go_back"`
	Percent       int        `json:"percent"`
	Encouragement string     `json:"encouragement,omitempty"`
}

// State renders the current view.
func (m Machine) State() State {
	m = m.normalized()
	s := State{
		Phase:         m.phase,
		QuestionIndex: m.Index(),
		CanAdvance:    m.CanAdvance(),
		CanGoBack:     m.CanGoBack(),
	}

	switch m.phase {
	case PhaseAvatarSelect:
		return s
	case PhaseComplete:
		s.Percent = 100
		return s
	}

	s.Percent = (m.index + 1) * 100 / QuestionCount
	if q, ok := QuestionAt(m.index); ok && m.phase == PhaseQuestion {
		s.QuestionID = q.ID
		s.Options = append([]string(nil), q.Options...)
		s.Answer = m.answers.Get(q.ID)
	}
	if m.encourageAt == m.index {
		if msg, ok := Encouragement(m.encourageAt); ok {
			s.Encouragement = msg
		}
	}
	return s
}

// ═══════════════════════════════════════════════════════════════════════════
// Serialization
// ═══════════════════════════════════════════════════════════════════════════

type machineJSON struct {
	Phase       Phase   `json:"phase"`
	Index       int     `json:"index"`
	Answers     Answers `json:"answers"`
	EncourageAt int     `json:"encourage_at"`
}

// MarshalJSON implements json.Marshaler.
func (m Machine) MarshalJSON() ([]byte, error) {
	m = m.normalized()
	return json.Marshal(machineJSON{
		Phase:       m.phase,
		Index:       m.index,
		Answers:     m.answers,
		EncourageAt: m.encourageAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It rejects snapshots that no
// sequence of transitions could have produced.
func (m *Machine) UnmarshalJSON(data []byte) error {
	var raw machineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Phase.IsValid() {
		return fmt.Errorf("quiz: unknown phase %q", raw.Phase)
	}
	if raw.Index < 0 || raw.Index >= QuestionCount {
		return fmt.Errorf("quiz: question index %d out of range", raw.Index)
	}
	if raw.Phase == PhaseEmotionalCheckin && raw.Index != CheckinIndex {
		return fmt.Errorf("quiz: check-in at index %d", raw.Index)
	}
	if raw.EncourageAt < -1 || raw.EncourageAt >= QuestionCount {
		return fmt.Errorf("quiz: encouragement index %d out of range", raw.EncourageAt)
	}

	answers, err := restoreAnswers(raw.Answers)
	if err != nil {
		return err
	}
	if raw.Phase == PhaseComplete {
		if err := answers.Validate(); err != nil {
			return fmt.Errorf("quiz: complete snapshot: %w", err)
		}
	}

	*m = Machine{
		phase:       raw.Phase,
		index:       raw.Index,
		answers:     answers,
		encourageAt: raw.EncourageAt,
	}
	return nil
}

// restoreAnswers replays every recorded answer through With so a snapshot
// cannot carry values outside the closed enums.
func restoreAnswers(raw Answers) (Answers, error) {
	out := Answers{Avatar: raw.Avatar, EmotionalState: raw.EmotionalState}
	for _, q := range questions {
		v := raw.Get(q.ID)
		if v == "" {
			continue
		}
		var ok bool
		if out, ok = out.With(q.ID, v); !ok {
			return Answers{}, fmt.Errorf("quiz: %s answer %q is not an allowed option", q.ID, v)
		}
	}
	return out, nil
}
