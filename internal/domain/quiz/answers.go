package quiz

import (
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// AgeBracket is the closed set of age buckets. It filters catalog content and
// selects the tone of generated text.
type AgeBracket string

const (
	Age13to17 AgeBracket = "13-17"
	Age18to25 AgeBracket = "18-25"
	Age26to35 AgeBracket = "26-35"
	Age36Plus AgeBracket = "36+"
)

// AgeBrackets returns every bracket in display order.
func AgeBrackets() []AgeBracket {
	return []AgeBracket{Age13to17, Age18to25, Age26to35, Age36Plus}
}

// IsValid reports enum membership.
func (a AgeBracket) IsValid() bool {
	switch a {
	case Age13to17, Age18to25, Age26to35, Age36Plus:
		return true
	}
	return false
}

// IsYouth reports whether the bracket gets the youth tone (13-25).
func (a AgeBracket) IsYouth() bool {
	return a == Age13to17 || a == Age18to25
}

// Income is the yearly income bucket.
type Income string

const (
	IncomeNone     Income = "none"
	IncomeUnder15k Income = "under-15k"
	Income15to40k  Income = "15k-40k"
	Income40to70k  Income = "40k-70k"
	IncomeOver70k  Income = "over-70k"
)

// IsValid reports enum membership.
func (i Income) IsValid() bool {
	switch i {
	case IncomeNone, IncomeUnder15k, Income15to40k, Income40to70k, IncomeOver70k:
		return true
	}
	return false
}

// Savings is the current savings bucket.
type Savings string

const (
	SavingsNone        Savings = "none"
	SavingsSmall       Savings = "small"
	SavingsSome        Savings = "some"
	SavingsModerate    Savings = "moderate"
	SavingsSubstantial Savings = "substantial"
)

// IsValid reports enum membership.
func (s Savings) IsValid() bool {
	switch s {
	case SavingsNone, SavingsSmall, SavingsSome, SavingsModerate, SavingsSubstantial:
		return true
	}
	return false
}

// Debt is the outstanding debt bucket.
type Debt string

const (
	DebtNone     Debt = "none"
	DebtLow      Debt = "low"
	DebtModerate Debt = "moderate"
	DebtHigh     Debt = "high"
)

// IsValid reports enum membership.
func (d Debt) IsValid() bool {
	switch d {
	case DebtNone, DebtLow, DebtModerate, DebtHigh:
		return true
	}
	return false
}

// Goal is the user's primary money goal.
type Goal string

const (
	GoalLearn       Goal = "learn"
	GoalSave        Goal = "save"
	GoalDebt        Goal = "debt"
	GoalBigPurchase Goal = "big-purchase"
	GoalInvest      Goal = "invest"
)

// IsValid reports enum membership.
func (g Goal) IsValid() bool {
	switch g {
	case GoalLearn, GoalSave, GoalDebt, GoalBigPurchase, GoalInvest:
		return true
	}
	return false
}

// Experience is the self-reported comfort with money.
type Experience string

const (
	ExperienceNew          Experience = "new"
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// IsValid reports enum membership.
func (e Experience) IsValid() bool {
	switch e {
	case ExperienceNew, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Answers is the quiz record. A zero field means "not answered yet".
// Avatar and EmotionalState are opaque and optional.
type Answers struct {
	Age            AgeBracket `json:"age,omitempty"`
	Income         Income     `json:"income,omitempty"`
	Savings        Savings    `json:"savings,omitempty"`
	Debt           Debt       `json:"debt,omitempty"`
	Goals          Goal       `json:"goals,omitempty"`
	Experience     Experience `json:"experience,omitempty"`
	Avatar         string     `json:"avatar,omitempty"`
	EmotionalState string     `json:"emotional_state,omitempty"`
}

// Get returns the recorded value for a question, or "" when unanswered.
func (a Answers) Get(id QuestionID) string {
	switch id {
	case QuestionAge:
		return string(a.Age)
	case QuestionIncome:
		return string(a.Income)
	case QuestionSavings:
		return string(a.Savings)
	case QuestionDebt:
		return string(a.Debt)
	case QuestionGoals:
		return string(a.Goals)
	case QuestionExperience:
		return string(a.Experience)
	}
	return ""
}

// With returns a copy with the answer for id set to value. Values outside the
// closed enum of the question leave the record unchanged and report false.
func (a Answers) With(id QuestionID, value string) (Answers, bool) {
	switch id {
	case QuestionAge:
		if v := AgeBracket(value); v.IsValid() {
			a.Age = v
			return a, true
		}
	case QuestionIncome:
		if v := Income(value); v.IsValid() {
			a.Income = v
			return a, true
		}
	case QuestionSavings:
		if v := Savings(value); v.IsValid() {
			a.Savings = v
			return a, true
		}
	case QuestionDebt:
		if v := Debt(value); v.IsValid() {
			a.Debt = v
			return a, true
		}
	case QuestionGoals:
		if v := Goal(value); v.IsValid() {
			a.Goals = v
			return a, true
		}
	case QuestionExperience:
		if v := Experience(value); v.IsValid() {
			a.Experience = v
			return a, true
		}
	}
	return a, false
}

// IsYouth reports whether the youth tone applies.
func (a Answers) IsYouth() bool {
	return a.Age.IsYouth()
}

// Validate checks that all six enumerated fields hold members of their enums.
// The error names the first missing or invalid field in question order.
func (a Answers) Validate() error {
	for _, q := range questions {
		v := a.Get(q.ID)
		if v == "" {
			return shared.NewFieldError("quiz", "Validate", string(q.ID), "answer is required")
		}
		if !q.Allows(v) {
			return shared.NewFieldError("quiz", "Validate", string(q.ID), "value is not an allowed option")
		}
	}
	return nil
}

// IsComplete reports whether Validate would succeed.
func (a Answers) IsComplete() bool {
	return a.Validate() == nil
}
