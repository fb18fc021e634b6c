package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(NewParams{Mode: shared.ModeStudent, TokenHash: []byte("hash"), Now: now, TTL: time.Hour})
	require.NoError(t, err)
	return s
}

// finishQuiz drives the machine to the last question, answered.
func finishQuiz(t *testing.T, s *Session) {
	t.Helper()
	values := []string{"18-25", "15k-40k", "none", "high", "learn", "new"}

	_, err := s.Transition(func(m quiz.Machine) quiz.Machine { return m.SelectAvatar("avatar1") })
	require.NoError(t, err)
	for i, v := range values {
		q, ok := quiz.QuestionAt(i)
		require.True(t, ok)
		_, err = s.Transition(func(m quiz.Machine) quiz.Machine { return m.Answer(q.ID, v) })
		require.NoError(t, err)
		if i == len(values)-1 {
			return
		}
		_, err = s.Transition(quiz.Machine.Advance)
		require.NoError(t, err)
		if s.Quiz.Phase() == quiz.PhaseEmotionalCheckin {
			_, err = s.Transition(func(m quiz.Machine) quiz.Machine { return m.SelectEmotion("okay") })
			require.NoError(t, err)
		}
	}
}

func TestNew(t *testing.T) {
	s := newSession(t)
	assert.True(t, s.ID.IsValid())
	assert.Equal(t, quiz.PhaseAvatarSelect, s.Quiz.Phase())
	assert.True(t, s.Progress.IsZero())
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)

	_, err := New(NewParams{Mode: "admin", TokenHash: []byte("h"), Now: now, TTL: time.Hour})
	assert.ErrorIs(t, err, shared.ErrInvalidMode)

	_, err = New(NewParams{Mode: shared.ModeStudent, Now: now, TTL: time.Hour})
	assert.True(t, shared.IsValidation(err))
}

func TestTransition_HandsOffExactlyOnce(t *testing.T) {
	s := newSession(t)
	finishQuiz(t, s)

	_, err := s.QuizAnswers()
	assert.ErrorIs(t, err, shared.ErrQuizNotCompleted)

	completed, err := s.Transition(quiz.Machine.Advance)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.True(t, s.Progress.QuizCompleted)
	assert.Equal(t, []progress.BadgeID{progress.BadgeFirstSteps}, s.Progress.Badges)

	s.Progress = progress.CompleteModule(s.Progress, "budget-basics")
	score := s.Progress.FinancialHealthScore

	completed, err = s.Transition(quiz.Machine.Advance)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, score, s.Progress.FinancialHealthScore, "progress must not be re-seeded")

	a, err := s.QuizAnswers()
	require.NoError(t, err)
	assert.Equal(t, quiz.Age18to25, a.Age)
	assert.Equal(t, "okay", a.EmotionalState)
}

func TestRetake(t *testing.T) {
	s := newSession(t)
	finishQuiz(t, s)
	_, err := s.Transition(quiz.Machine.Advance)
	require.NoError(t, err)

	s.Retake()
	assert.True(t, s.Progress.IsZero())
	assert.Nil(t, s.Answers)
	assert.Equal(t, quiz.PhaseAvatarSelect, s.Quiz.Phase())

	finishQuiz(t, s)
	completed, err := s.Transition(quiz.Machine.Advance)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, []progress.BadgeID{progress.BadgeFirstSteps}, s.Progress.Badges)
}

func TestExpiryAndTouch(t *testing.T) {
	s := newSession(t)
	assert.False(t, s.IsExpired(now.Add(59*time.Minute)))
	assert.True(t, s.IsExpired(now.Add(time.Hour)))

	s.Touch(now.Add(30*time.Minute), time.Hour)
	assert.False(t, s.IsExpired(now.Add(80*time.Minute)))
}

func TestClone_DoesNotAlias(t *testing.T) {
	s := newSession(t)
	finishQuiz(t, s)
	_, err := s.Transition(quiz.Machine.Advance)
	require.NoError(t, err)

	c := s.Clone()
	c.Progress = progress.CompleteModule(c.Progress, progress.ModuleEmergencyFund)
	c.Answers.Goals = quiz.GoalInvest
	c.TokenHash[0] = 'X'

	assert.Empty(t, s.Progress.ModulesCompleted)
	assert.Equal(t, quiz.GoalLearn, s.Answers.Goals)
	assert.Equal(t, byte('h'), s.TokenHash[0])
}

func TestToken(t *testing.T) {
	token, hash, err := NewToken(bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	s := newSession(t)
	s.TokenHash = hash

	assert.NoError(t, s.VerifyToken(token))
	assert.ErrorIs(t, s.VerifyToken(token+"x"), shared.ErrUnauthorized)
	assert.ErrorIs(t, s.VerifyToken(""), shared.ErrInvalidToken)
}

func TestLocker_SerializesPerID(t *testing.T) {
	l := NewLocker()
	id := shared.SessionID("3f2c1b1e-8a4f-4c3a-9b0e-0d6f2a1c5e7b")

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, l.Len())
}
