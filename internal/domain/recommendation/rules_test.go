package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstart/smartstart-money/internal/domain/quiz"
)

func ruleIDs(recs []Recommendation) []RuleID {
	ids := make([]RuleID, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.RuleID)
	}
	return ids
}

func find(recs []Recommendation, id RuleID) (Recommendation, bool) {
	for _, r := range recs {
		if r.RuleID == id {
			return r, true
		}
	}
	return Recommendation{}, false
}

func TestRecommend_CoFiringTeenBeginner(t *testing.T) {
	a := quiz.Answers{
		Age:        quiz.Age13to17,
		Income:     quiz.IncomeNone,
		Savings:    quiz.SavingsNone,
		Debt:       quiz.DebtNone,
		Goals:      quiz.GoalLearn,
		Experience: quiz.ExperienceNew,
	}

	recs := Recommend(a)
	assert.Equal(t, []RuleID{
		RuleLearningBasics,
		RuleEmergencyFund,
		RuleStartEarning,
		RuleSmartSpending,
	}, ruleIDs(recs))

	learning, _ := find(recs, RuleLearningBasics)
	assert.Equal(t, "Start Your Money Journey!", learning.Title)
	assert.Equal(t, PriorityHigh, learning.Priority)
	assert.Equal(t, "Start First", learning.PriorityLabel)
}

func TestRecommend_EachRuleFiresOnItsPredicate(t *testing.T) {
	// base only fires the emergency fund rule.
	base := quiz.Answers{
		Age:        quiz.Age36Plus,
		Income:     quiz.IncomeOver70k,
		Savings:    quiz.SavingsSmall,
		Debt:       quiz.DebtNone,
		Goals:      quiz.GoalSave,
		Experience: quiz.ExperienceAdvanced,
	}

	tests := []struct {
		name     string
		patch    func(*quiz.Answers)
		rule     RuleID
		priority Priority
	}{
		{"learning via experience", func(a *quiz.Answers) { a.Experience = quiz.ExperienceBeginner }, RuleLearningBasics, PriorityHigh},
		{"learning via goal", func(a *quiz.Answers) { a.Goals = quiz.GoalLearn }, RuleLearningBasics, PriorityHigh},
		{"emergency fund", func(a *quiz.Answers) {}, RuleEmergencyFund, PriorityHigh},
		{"start earning", func(a *quiz.Answers) { a.Age = quiz.Age13to17; a.Income = quiz.IncomeNone }, RuleStartEarning, PriorityMedium},
		{"debt moderate", func(a *quiz.Answers) { a.Debt = quiz.DebtModerate }, RuleDebtPayoff, PriorityHigh},
		{"debt high", func(a *quiz.Answers) { a.Debt = quiz.DebtHigh }, RuleDebtPayoff, PriorityHigh},
		{"smart spending", func(a *quiz.Answers) { a.Age = quiz.Age18to25; a.Experience = quiz.ExperienceNew }, RuleSmartSpending, PriorityMedium},
		{"investing via savings", func(a *quiz.Answers) { a.Savings = quiz.SavingsModerate }, RuleInvesting, PriorityMedium},
		{"investing via goal", func(a *quiz.Answers) { a.Goals = quiz.GoalInvest }, RuleInvesting, PriorityHigh},
		{"big purchase", func(a *quiz.Answers) { a.Goals = quiz.GoalBigPurchase }, RuleBigPurchase, PriorityHigh},
		{"income growth", func(a *quiz.Answers) { a.Age = quiz.Age26to35; a.Income = quiz.IncomeUnder15k }, RuleIncomeGrowth, PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.patch(&a)

			rec, ok := find(Recommend(a), tt.rule)
			require.True(t, ok, "rule %s should fire", tt.rule)
			assert.Equal(t, tt.priority, rec.Priority)
			assert.NotEmpty(t, rec.Title)
			assert.NotEmpty(t, rec.ActionSteps)
		})
	}
}

func TestRecommend_PredicatesThatMustNotFire(t *testing.T) {
	tests := []struct {
		name string
		a    quiz.Answers
		rule RuleID
	}{
		{
			name: "no earning rule for adults without income",
			a:    quiz.Answers{Age: quiz.Age18to25, Income: quiz.IncomeNone, Savings: quiz.SavingsNone, Debt: quiz.DebtNone, Goals: quiz.GoalSave, Experience: quiz.ExperienceAdvanced},
			rule: RuleStartEarning,
		},
		{
			name: "no smart spending for new adults over 25",
			a:    quiz.Answers{Age: quiz.Age26to35, Income: quiz.IncomeNone, Savings: quiz.SavingsNone, Debt: quiz.DebtNone, Goals: quiz.GoalSave, Experience: quiz.ExperienceNew},
			rule: RuleSmartSpending,
		},
		{
			name: "no investing with savings but high debt",
			a:    quiz.Answers{Age: quiz.Age26to35, Income: quiz.IncomeOver70k, Savings: quiz.SavingsSubstantial, Debt: quiz.DebtHigh, Goals: quiz.GoalDebt, Experience: quiz.ExperienceAdvanced},
			rule: RuleInvesting,
		},
		{
			name: "no income growth for teens",
			a:    quiz.Answers{Age: quiz.Age13to17, Income: quiz.IncomeUnder15k, Savings: quiz.SavingsNone, Debt: quiz.DebtNone, Goals: quiz.GoalSave, Experience: quiz.ExperienceAdvanced},
			rule: RuleIncomeGrowth,
		},
		{
			name: "no debt plan for low debt",
			a:    quiz.Answers{Age: quiz.Age36Plus, Income: quiz.IncomeOver70k, Savings: quiz.SavingsSome, Debt: quiz.DebtLow, Goals: quiz.GoalSave, Experience: quiz.ExperienceAdvanced},
			rule: RuleDebtPayoff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := find(Recommend(tt.a), tt.rule)
			assert.False(t, ok)
		})
	}
}

func TestRecommend_InvestingHighDebtButInvestGoalStillFires(t *testing.T) {
	a := quiz.Answers{Age: quiz.Age36Plus, Income: quiz.IncomeOver70k, Savings: quiz.SavingsSubstantial, Debt: quiz.DebtHigh, Goals: quiz.GoalInvest, Experience: quiz.ExperienceAdvanced}
	rec, ok := find(Recommend(a), RuleInvesting)
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, rec.Priority)
}

func TestRecommend_InvestingActionStepVariants(t *testing.T) {
	base := quiz.Answers{Income: quiz.Income40to70k, Savings: quiz.SavingsSome, Debt: quiz.DebtNone, Goals: quiz.GoalSave, Experience: quiz.ExperienceAdvanced}

	tests := []struct {
		age       quiz.AgeBracket
		title     string
		firstStep string
	}{
		{quiz.Age13to17, "Make Your Money Grow", "Ask a parent to help you open a custodial investment account"},
		{quiz.Age18to25, "Make Your Money Grow", "Open a Roth IRA - you can invest up to $7,000/year"},
		{quiz.Age26to35, "Start Investing for Your Future", "Max out employer 401k match (free money!)"},
		{quiz.Age36Plus, "Start Investing for Your Future", "Max out employer 401k match (free money!)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.age), func(t *testing.T) {
			a := base
			a.Age = tt.age
			rec, ok := find(Recommend(a), RuleInvesting)
			require.True(t, ok)
			assert.Equal(t, tt.title, rec.Title)
			assert.Equal(t, tt.firstStep, rec.ActionSteps[0])
		})
	}
}

func TestRecommend_ToneDoesNotAffectFiring(t *testing.T) {
	youth := quiz.Answers{Age: quiz.Age18to25, Income: quiz.IncomeOver70k, Savings: quiz.SavingsNone, Debt: quiz.DebtHigh, Goals: quiz.GoalSave, Experience: quiz.ExperienceBeginner}
	general := youth
	general.Age = quiz.Age36Plus

	assert.Equal(t, ruleIDs(Recommend(youth)), ruleIDs(Recommend(general)))

	y, _ := find(Recommend(youth), RuleDebtPayoff)
	g, _ := find(Recommend(general), RuleDebtPayoff)
	assert.Equal(t, "Tackle What You Owe", y.Title)
	assert.Equal(t, "Create Your Debt Freedom Plan", g.Title)
}

func TestRecommend_OrderFollowsRulesNotPriority(t *testing.T) {
	a := quiz.Answers{Age: quiz.Age18to25, Income: quiz.IncomeUnder15k, Savings: quiz.SavingsSome, Debt: quiz.DebtModerate, Goals: quiz.GoalBigPurchase, Experience: quiz.ExperienceIntermediate}
	assert.Equal(t, []RuleID{RuleDebtPayoff, RuleInvesting, RuleBigPurchase, RuleIncomeGrowth}, ruleIDs(Recommend(a)))
}

func TestRecommend_ResultsAreIndependentCopies(t *testing.T) {
	a := quiz.Answers{Age: quiz.Age13to17, Income: quiz.IncomeNone, Savings: quiz.SavingsNone, Debt: quiz.DebtNone, Goals: quiz.GoalLearn, Experience: quiz.ExperienceNew}
	first := Recommend(a)
	first[0].ActionSteps[0] = "tampered"
	assert.NotEqual(t, "tampered", Recommend(a)[0].ActionSteps[0])
}

func TestRules_Enumerable(t *testing.T) {
	rs := Rules()
	require.Len(t, rs, 8)
	assert.Equal(t, RuleLearningBasics, rs[0].ID)
	assert.Equal(t, RuleIncomeGrowth, rs[7].ID)
}

func TestQuickWinsAndResources_TwoVariants(t *testing.T) {
	youth := quiz.Answers{Age: quiz.Age13to17}
	general := quiz.Answers{Age: quiz.Age26to35}

	assert.Len(t, QuickWins(youth), 4)
	assert.Len(t, QuickWins(general), 4)
	assert.NotEqual(t, QuickWins(youth), QuickWins(general))
	assert.Equal(t, QuickWins(youth), QuickWins(quiz.Answers{Age: quiz.Age18to25}))

	assert.Len(t, Resources(youth), 4)
	assert.Equal(t, "Two Cents (YouTube)", Resources(youth)[0].Title)
	assert.Equal(t, "r/personalfinance Wiki", Resources(general)[0].Title)
	assert.Equal(t, Resources(general), Resources(quiz.Answers{Age: quiz.Age36Plus}))
}

func TestPriority_Label(t *testing.T) {
	assert.Equal(t, "Start First", PriorityHigh.Label())
	assert.Equal(t, "Important", PriorityMedium.Label())
	assert.Equal(t, "When Ready", PriorityLow.Label())
}
