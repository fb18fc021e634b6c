package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

func sample(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		[]Module{
			{
				ID: "needs-vs-wants", Title: "Needs vs. Wants",
				AgeGroups: []quiz.AgeBracket{quiz.Age13to17, quiz.Age18to25, quiz.Age26to35, quiz.Age36Plus},
				Content: ModuleContent{Quiz: &ModuleQuiz{
					Question:      "Which is a want?",
					Options:       []string{"Groceries", "Netflix", "Rent"},
					CorrectAnswer: 1,
					Explanation:   "Netflix is entertainment.",
				}},
			},
			{
				ID: "credit-cards-101", Title: "Credit Cards",
				AgeGroups: []quiz.AgeBracket{quiz.Age18to25, quiz.Age26to35, quiz.Age36Plus},
			},
		},
		[]Scenario{
			{
				ID: "impulse-buy", Title: "Impulse Buy", Money: 300,
				AgeGroups: []quiz.AgeBracket{quiz.Age13to17, quiz.Age18to25},
				Options: []ScenarioOption{
					{Text: "Buy now", Impact: ImpactNegative, MoneyChange: -150},
					{Text: "Wait", Impact: ImpactPositive, MoneyChange: 0},
				},
			},
		},
	)
	require.NoError(t, err)
	return c
}

func TestCatalog_EligibilityFilter(t *testing.T) {
	c := sample(t)

	teen := c.ModulesFor(quiz.Age13to17)
	require.Len(t, teen, 1)
	assert.Equal(t, "needs-vs-wants", teen[0].ID)
	assert.Len(t, c.ModulesFor(quiz.Age36Plus), 2)

	assert.Len(t, c.ScenariosFor(quiz.Age18to25), 1)
	assert.Empty(t, c.ScenariosFor(quiz.Age36Plus))
}

func TestCatalog_EligibleLookup(t *testing.T) {
	c := sample(t)

	_, err := c.EligibleModule("credit-cards-101", quiz.Age13to17)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = c.EligibleModule("missing", quiz.Age13to17)
	assert.True(t, shared.IsNotFound(err))

	_, err = c.EligibleScenario("impulse-buy", quiz.Age26to35)
	assert.ErrorIs(t, err, shared.ErrNotEligible)

	s, err := c.EligibleScenario("impulse-buy", quiz.Age13to17)
	require.NoError(t, err)
	assert.Equal(t, 300, s.Money)
}

func TestModuleQuiz_Check(t *testing.T) {
	m, err := sample(t).Module("needs-vs-wants")
	require.NoError(t, err)

	res, err := m.Content.Quiz.Check(1)
	require.NoError(t, err)
	assert.True(t, res.Correct)

	res, err = m.Content.Quiz.Check(0)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.CorrectAnswer)

	_, err = m.Content.Quiz.Check(3)
	assert.True(t, shared.IsValidation(err))
}

func TestScenario_Choose(t *testing.T) {
	s, err := sample(t).Scenario("impulse-buy")
	require.NoError(t, err)

	out, err := s.Choose(0)
	require.NoError(t, err)
	assert.Equal(t, ImpactNegative, out.Impact)
	assert.Equal(t, 300, out.MoneyBefore)
	assert.Equal(t, 150, out.MoneyAfter)

	_, err = s.Choose(-1)
	assert.Error(t, err)
}

func TestNew_RejectsInvalidContent(t *testing.T) {
	groups := []quiz.AgeBracket{quiz.Age13to17}

	tests := []struct {
		name      string
		modules   []Module
		scenarios []Scenario
	}{
		{"duplicate module", []Module{{ID: "a", Title: "A", AgeGroups: groups}, {ID: "a", Title: "A", AgeGroups: groups}}, nil},
		{"module without groups", []Module{{ID: "a", Title: "A"}}, nil},
		{"unknown group", []Module{{ID: "a", Title: "A", AgeGroups: []quiz.AgeBracket{"99+"}}}, nil},
		{"quiz answer out of range", []Module{{ID: "a", Title: "A", AgeGroups: groups, Content: ModuleContent{Quiz: &ModuleQuiz{Options: []string{"x", "y"}, CorrectAnswer: 2}}}}, nil},
		{"scenario without options", nil, []Scenario{{ID: "s", Title: "S", AgeGroups: groups}}},
		{"bad impact", nil, []Scenario{{ID: "s", Title: "S", AgeGroups: groups, Options: []ScenarioOption{{Text: "x", Impact: "great"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.modules, tt.scenarios)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
		})
	}
}
