// Package progress tracks what a user has done in a session: the health
// score, completed modules and scenarios, and unlocked badges.
//
// All operations are pure: they take a UserProgress value and return a new
// one without touching the input. Callers replace their copy with the result.
package progress

import (
	"time"

	"github.com/smartstart/smartstart-money/internal/domain/quiz"
)

// UserProgress is the session-scoped progress aggregate.
type UserProgress struct {
	QuizCompleted        bool          `json:"quiz_completed"`
	Badges               []BadgeID     `json:"badges"`
	ScenariosCompleted   []string      `json:"scenarios_completed"`
	ModulesCompleted     []string      `json:"modules_completed"`
	FinancialHealthScore int           `json:"financial_health_score"`
	Achievements         []Achievement `json:"achievements"`
}

// Achievement is kept as part of the aggregate shape; no rule produces one yet.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

// HasBadge reports whether the badge is unlocked.
func (p UserProgress) HasBadge(id BadgeID) bool {
	return contains(p.Badges, id)
}

// HasModule reports whether the module was completed.
func (p UserProgress) HasModule(id string) bool {
	return contains(p.ModulesCompleted, id)
}

// HasScenario reports whether the scenario was completed.
func (p UserProgress) HasScenario(id string) bool {
	return contains(p.ScenariosCompleted, id)
}

// IsZero reports whether p equals the reset aggregate.
func (p UserProgress) IsZero() bool {
	return !p.QuizCompleted &&
		len(p.Badges) == 0 &&
		len(p.ScenariosCompleted) == 0 &&
		len(p.ModulesCompleted) == 0 &&
		p.FinancialHealthScore == 0 &&
		len(p.Achievements) == 0
}

// clone deep-copies the slices so the result never aliases the input.
func (p UserProgress) clone() UserProgress {
	return UserProgress{
		QuizCompleted:        p.QuizCompleted,
		Badges:               append([]BadgeID{}, p.Badges...),
		ScenariosCompleted:   append([]string{}, p.ScenariosCompleted...),
		ModulesCompleted:     append([]string{}, p.ModulesCompleted...),
		FinancialHealthScore: p.FinancialHealthScore,
		Achievements:         append([]Achievement{}, p.Achievements...),
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Operations
// ═══════════════════════════════════════════════════════════════════════════

// Reset returns the zero aggregate. It is the only operation that may lower
// the score or shrink a set.
func Reset() UserProgress {
	return UserProgress{
		Badges:             []BadgeID{},
		ScenariosCompleted: []string{},
		ModulesCompleted:   []string{},
		Achievements:       []Achievement{},
	}
}

// CompleteQuiz seeds progress from completed answers. Badges are replaced with
// the first-steps badge and the score is set to BaseScore. It fails with a
// validation error naming the missing field when the answers are incomplete.
func CompleteQuiz(p UserProgress, a quiz.Answers) (UserProgress, error) {
	if err := a.Validate(); err != nil {
		return p, err
	}

	next := p.clone()
	next.QuizCompleted = true
	next.Badges = []BadgeID{BadgeFirstSteps}
	next.FinancialHealthScore = BaseScore(a)
	return next, nil
}

// CompleteModule records a finished module. Completing a module twice is a
// no-op.
func CompleteModule(p UserProgress, moduleID string) UserProgress {
	if p.HasModule(moduleID) {
		return p.clone()
	}

	next := p.clone()
	next.ModulesCompleted = append(next.ModulesCompleted, moduleID)
	next.FinancialHealthScore = AddCapped(next.FinancialHealthScore, ModuleIncrement)

	if len(next.ModulesCompleted) >= LearningStreakThreshold {
		next = next.unlock(BadgeLearningStreak)
	}
	if moduleID == ModuleEmergencyFund {
		next = next.unlock(BadgeSmartSaver)
	}
	if moduleID == ModuleInvesting {
		next = next.unlock(BadgeInvestmentNovice)
	}
	return next
}

// CompleteScenario records a finished scenario. Completing a scenario twice is
// a no-op.
func CompleteScenario(p UserProgress, scenarioID string) UserProgress {
	if p.HasScenario(scenarioID) {
		return p.clone()
	}

	next := p.clone()
	next.ScenariosCompleted = append(next.ScenariosCompleted, scenarioID)
	next.FinancialHealthScore = AddCapped(next.FinancialHealthScore, ScenarioIncrement)

	if len(next.ScenariosCompleted) >= ScenarioMasterThreshold {
		next = next.unlock(BadgeScenarioMaster)
	}
	return next
}

// unlock appends the badge unless it is already present.
func (p UserProgress) unlock(id BadgeID) UserProgress {
	if !p.HasBadge(id) {
		p.Badges = append(p.Badges, id)
	}
	return p
}

// NewBadges returns the badges present in after but not in before, in
// unlock order.
func NewBadges(before, after UserProgress) []BadgeID {
	var out []BadgeID
	for _, b := range after.Badges {
		if !before.HasBadge(b) {
			out = append(out, b)
		}
	}
	return out
}

func contains[T comparable](items []T, v T) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
