package progress

// BadgeID is the stable identifier of a badge.
type BadgeID string

const (
	BadgeFirstSteps       BadgeID = "first-steps"
	BadgeScenarioMaster   BadgeID = "scenario-master"
	BadgeLearningStreak   BadgeID = "learning-streak"
	BadgeSmartSaver       BadgeID = "smart-saver"
	BadgeDebtDestroyer    BadgeID = "debt-destroyer"
	BadgeInvestmentNovice BadgeID = "investment-novice"
)

// Unlock thresholds and the modules that award their own badge.
const (
	LearningStreakThreshold = 3
	ScenarioMasterThreshold = 5

	ModuleEmergencyFund = "emergency-fund-basics"
	ModuleInvesting     = "investing-basics"
)

// BadgeDefinition describes a badge for display.
type BadgeDefinition struct {
	ID          BadgeID `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

var badgeDefinitions = []BadgeDefinition{
	{BadgeFirstSteps, "First Steps", "Completed your first quiz"},
	{BadgeScenarioMaster, "Scenario Master", "Completed 5 scenarios"},
	{BadgeLearningStreak, "Learning Streak", "Completed 3 modules"},
	{BadgeSmartSaver, "Smart Saver", "Learned about emergency funds"},
	// No rule unlocks this one yet; it stays on the board as a locked goal.
	{BadgeDebtDestroyer, "Debt Destroyer", "Completed debt payoff module"},
	{BadgeInvestmentNovice, "Investment Novice", "Learned investing basics"},
}

// Badges returns every badge definition in board order.
func Badges() []BadgeDefinition {
	return append([]BadgeDefinition(nil), badgeDefinitions...)
}

// BoardEntry is one badge on the dashboard with its unlock state.
type BoardEntry struct {
	BadgeDefinition
	Unlocked bool `json:"unlocked"`
}

// Board lists every badge with its unlock state for p.
func Board(p UserProgress) []BoardEntry {
	out := make([]BoardEntry, 0, len(badgeDefinitions))
	for _, d := range badgeDefinitions {
		out = append(out, BoardEntry{BadgeDefinition: d, Unlocked: p.HasBadge(d.ID)})
	}
	return out
}

// Milestone is a coarse dashboard checkpoint.
type Milestone struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// Milestones returns the three dashboard checkpoints.
func Milestones(p UserProgress) []Milestone {
	return []Milestone{
		{Label: "Quiz Completed", Completed: p.QuizCompleted},
		{Label: "Scenarios Done", Completed: len(p.ScenariosCompleted) >= 1},
		{Label: "Modules Started", Completed: len(p.ModulesCompleted) >= 1},
	}
}
