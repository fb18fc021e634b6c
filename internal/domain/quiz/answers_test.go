package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

func completeAnswers() Answers {
	return Answers{
		Age:        Age26to35,
		Income:     Income40to70k,
		Savings:    SavingsSome,
		Debt:       DebtNone,
		Goals:      GoalSave,
		Experience: ExperienceIntermediate,
	}
}

func TestAnswers_ValidateNamesMissingField(t *testing.T) {
	tests := []struct {
		name  string
		patch func(*Answers)
		field string
	}{
		{"age", func(a *Answers) { a.Age = "" }, "age"},
		{"income", func(a *Answers) { a.Income = "" }, "income"},
		{"savings", func(a *Answers) { a.Savings = "" }, "savings"},
		{"debt", func(a *Answers) { a.Debt = "" }, "debt"},
		{"goals", func(a *Answers) { a.Goals = "" }, "goals"},
		{"experience", func(a *Answers) { a.Experience = "" }, "experience"},
		{"out of enum", func(a *Answers) { a.Debt = "huge" }, "debt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := completeAnswers()
			tt.patch(&a)

			err := a.Validate()
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
			assert.Equal(t, tt.field, shared.FieldOf(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestAnswers_ValidateAcceptsCompleteRecord(t *testing.T) {
	a := completeAnswers()
	assert.NoError(t, a.Validate())
	assert.True(t, a.IsComplete())
}

func TestAnswers_OptionalFieldsNotRequired(t *testing.T) {
	a := completeAnswers()
	a.Avatar = ""
	a.EmotionalState = ""
	assert.NoError(t, a.Validate())
}

func TestAgeBracket_IsYouth(t *testing.T) {
	assert.True(t, Age13to17.IsYouth())
	assert.True(t, Age18to25.IsYouth())
	assert.False(t, Age26to35.IsYouth())
	assert.False(t, Age36Plus.IsYouth())
}

func TestEncouragement(t *testing.T) {
	for i := 0; i < QuestionCount; i++ {
		_, ok := Encouragement(i)
		assert.Equal(t, i%2 == 1, ok, "question %d", i)
	}
	_, ok := Encouragement(QuestionCount)
	assert.False(t, ok)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, QuestionCount)
	qs[0].Options[0] = "tampered"

	q, ok := QuestionAt(0)
	require.True(t, ok)
	assert.Equal(t, "13-17", q.Options[0])
}
