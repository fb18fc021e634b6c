package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstart/smartstart-money/internal/domain/progress"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

func TestEmbeddedSource_Load(t *testing.T) {
	c, err := NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, c.Modules(), 6)
	assert.Len(t, c.Scenarios(), 5)

	// Modules that award their own badge must exist in the built-in catalog.
	for _, id := range []string{progress.ModuleEmergencyFund, progress.ModuleInvesting} {
		_, err := c.Module(id)
		assert.NoError(t, err, id)
	}

	budget, err := c.Module("budget-basics")
	require.NoError(t, err)
	require.NotNil(t, budget.Content.Quiz)
	assert.Equal(t, 2, budget.Content.Quiz.CorrectAnswer)

	cards, err := c.Module("credit-cards-101")
	require.NoError(t, err)
	assert.Nil(t, cards.Content.Quiz)
}

func TestEmbeddedSource_AgeFilters(t *testing.T) {
	c, err := NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	tests := []struct {
		age       quiz.AgeBracket
		modules   int
		scenarios int
	}{
		{quiz.Age13to17, 4, 4},
		{quiz.Age18to25, 6, 5},
		{quiz.Age26to35, 6, 2},
		{quiz.Age36Plus, 5, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.age), func(t *testing.T) {
			assert.Len(t, c.ModulesFor(tt.age), tt.modules)
			assert.Len(t, c.ScenariosFor(tt.age), tt.scenarios)
		})
	}
}

func TestEmbeddedSource_ScenarioMoney(t *testing.T) {
	c, err := NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	s, err := c.Scenario("summer-job")
	require.NoError(t, err)

	out, err := s.Choose(1)
	require.NoError(t, err)
	assert.Equal(t, 2000, out.MoneyBefore)
	assert.Equal(t, 500, out.MoneyAfter)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
modules:
  - id: m1
    title: One
    age_groups: ["36+"]
scenarios: []
`), 0o600))

		c, err := NewFileSource(path).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, c.ModulesFor(quiz.Age36Plus), 1)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("modules:\n  - id: m1\n    titel: One\n"), 0o600))

		_, err := NewFileSource(path).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("modules:\n  - id: m1\n    title: One\n"), 0o600))

		_, err := NewFileSource(path).Load(context.Background())
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(dir, "nope.yaml")).Load(context.Background())
		assert.Error(t, err)
	})
}
