package recommendation

import (
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
)

// Content is the text payload of one tone variant.
type Content struct {
	Title       string
	Description string
	ActionSteps []string
}

// Rule pairs a predicate with a recommendation template. Rules are
// independent: none suppresses another.
type Rule struct {
	ID       RuleID
	Category Category
	// When decides whether the rule fires.
	When func(a quiz.Answers) bool
	// Priority picks the tier for answers the rule fired on.
	Priority func(a quiz.Answers) Priority
	// Content picks the tone and action-step variant. It never affects firing.
	Content func(a quiz.Answers) Content
}

// Apply builds the recommendation for a. The caller checks When first.
func (r Rule) Apply(a quiz.Answers) Recommendation {
	c := r.Content(a)
	p := r.Priority(a)
	return Recommendation{
		RuleID:        r.ID,
		Category:      r.Category,
		Title:         c.Title,
		Description:   c.Description,
		Priority:      p,
		PriorityLabel: p.Label(),
		ActionSteps:   append([]string(nil), c.ActionSteps...),
	}
}

func fixed(p Priority) func(quiz.Answers) Priority {
	return func(quiz.Answers) Priority { return p }
}

func toned(youth, general Content) func(quiz.Answers) Content {
	return func(a quiz.Answers) Content {
		if a.IsYouth() {
			return youth
		}
		return general
	}
}

func same(c Content) func(quiz.Answers) Content {
	return func(quiz.Answers) Content { return c }
}

func oneOf[T comparable](v T, set ...T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// rules is evaluated in order; emission order equals rule order.
var rules = []Rule{
	{
		ID:       RuleLearningBasics,
		Category: CategoryLearning,
		When: func(a quiz.Answers) bool {
			return oneOf(a.Experience, quiz.ExperienceNew, quiz.ExperienceBeginner) || a.Goals == quiz.GoalLearn
		},
		Priority: fixed(PriorityHigh),
		Content:  toned(learningYouth, learningGeneral),
	},
	{
		ID:       RuleEmergencyFund,
		Category: CategorySavings,
		When: func(a quiz.Answers) bool {
			return oneOf(a.Savings, quiz.SavingsNone, quiz.SavingsSmall)
		},
		Priority: fixed(PriorityHigh),
		Content:  toned(emergencyYouth, emergencyGeneral),
	},
	{
		ID:       RuleStartEarning,
		Category: CategoryEarning,
		When: func(a quiz.Answers) bool {
			return a.Income == quiz.IncomeNone && a.Age == quiz.Age13to17
		},
		Priority: fixed(PriorityMedium),
		Content:  same(startEarning),
	},
	{
		ID:       RuleDebtPayoff,
		Category: CategoryDebt,
		When: func(a quiz.Answers) bool {
			return oneOf(a.Debt, quiz.DebtModerate, quiz.DebtHigh)
		},
		Priority: fixed(PriorityHigh),
		Content:  toned(debtYouth, debtGeneral),
	},
	{
		ID:       RuleSmartSpending,
		Category: CategorySpending,
		When: func(a quiz.Answers) bool {
			return a.IsYouth() && a.Experience == quiz.ExperienceNew
		},
		Priority: fixed(PriorityMedium),
		Content:  same(smartSpending),
	},
	{
		ID:       RuleInvesting,
		Category: CategoryInvesting,
		When: func(a quiz.Answers) bool {
			hasSavings := oneOf(a.Savings, quiz.SavingsSome, quiz.SavingsModerate, quiz.SavingsSubstantial)
			return (hasSavings && a.Debt != quiz.DebtHigh) || a.Goals == quiz.GoalInvest
		},
		Priority: func(a quiz.Answers) Priority {
			if a.Goals == quiz.GoalInvest {
				return PriorityHigh
			}
			return PriorityMedium
		},
		Content: investingContent,
	},
	{
		ID:       RuleBigPurchase,
		Category: CategoryGoal,
		When: func(a quiz.Answers) bool {
			return a.Goals == quiz.GoalBigPurchase
		},
		Priority: fixed(PriorityHigh),
		Content:  same(bigPurchase),
	},
	{
		ID:       RuleIncomeGrowth,
		Category: CategoryCareer,
		When: func(a quiz.Answers) bool {
			return oneOf(a.Age, quiz.Age18to25, quiz.Age26to35) &&
				oneOf(a.Income, quiz.IncomeUnder15k, quiz.Income15to40k)
		},
		Priority: fixed(PriorityMedium),
		Content:  same(incomeGrowth),
	},
}

// Rules returns the rule set in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Recommend evaluates every rule against a and returns the recommendations of
// the rules that fired, in rule order.
func Recommend(a quiz.Answers) []Recommendation {
	out := make([]Recommendation, 0, len(rules))
	for _, r := range rules {
		if r.When(a) {
			out = append(out, r.Apply(a))
		}
	}
	return out
}

func investingContent(a quiz.Answers) Content {
	switch {
	case a.Age == quiz.Age13to17:
		return investingTeen
	case a.IsYouth():
		return investingYoungAdult
	default:
		return investingGeneral
	}
}

// QuickWins returns the four small actions for this week.
func QuickWins(a quiz.Answers) []string {
	if a.IsYouth() {
		return append([]string(nil), quickWinsYouth...)
	}
	return append([]string(nil), quickWinsGeneral...)
}

// Resources returns the four recommended resources.
func Resources(a quiz.Answers) []Resource {
	if a.IsYouth() {
		return append([]Resource(nil), resourcesYouth...)
	}
	return append([]Resource(nil), resourcesGeneral...)
}
