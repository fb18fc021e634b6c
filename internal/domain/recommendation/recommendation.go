// Package recommendation maps completed quiz answers to a personalized,
// prioritized action plan. Everything here is a pure function of the answers.
package recommendation

// Priority is the urgency tier of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Label returns the display label for the tier.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "Start First"
	case PriorityMedium:
		return "Important"
	case PriorityLow:
		return "When Ready"
	}
	return ""
}

// Category is an opaque tag the presentation layer resolves to an icon.
type Category string

const (
	CategoryLearning  Category = "learning"
	CategorySavings   Category = "savings"
	CategoryEarning   Category = "earning"
	CategoryDebt      Category = "debt"
	CategorySpending  Category = "spending"
	CategoryInvesting Category = "investing"
	CategoryGoal      Category = "goal"
	CategoryCareer    Category = "career"
)

// RuleID identifies the rule that produced a recommendation.
type RuleID string

const (
	RuleLearningBasics RuleID = "learning-basics"
	RuleEmergencyFund  RuleID = "emergency-fund"
	RuleStartEarning   RuleID = "start-earning"
	RuleDebtPayoff     RuleID = "debt-payoff"
	RuleSmartSpending  RuleID = "smart-spending"
	RuleInvesting      RuleID = "investing"
	RuleBigPurchase    RuleID = "big-purchase"
	RuleIncomeGrowth   RuleID = "income-growth"
)

// Recommendation is a derived suggestion. It is never stored.
type Recommendation struct {
	RuleID        RuleID   `json:"rule_id"`
	Category      Category `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      Priority `json:"priority"`
	PriorityLabel string   `json:"priority_label"`
	ActionSteps   []string `json:"action_steps"`
}

// Resource is an external learning resource.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
