package progress

import "github.com/smartstart/smartstart-money/internal/domain/quiz"

// Score bounds and per-activity increments.
const (
	MinScore = 0
	MaxScore = 100

	// InitialScore is the starting point of BaseScore before bonuses.
	InitialScore = 50

	ModuleIncrement   = 8
	ScenarioIncrement = 5
)

// Quiz bonuses, all additive.
const (
	bonusHasSavings     = 15
	bonusNoDebt         = 15
	bonusExperienced    = 10
	bonusBeyondLearning = 10
)

// BaseScore is the health score seeded at quiz completion.
func BaseScore(a quiz.Answers) int {
	score := InitialScore
	if a.Savings != quiz.SavingsNone {
		score += bonusHasSavings
	}
	if a.Debt == quiz.DebtNone {
		score += bonusNoDebt
	}
	if a.Experience != quiz.ExperienceNew {
		score += bonusExperienced
	}
	if a.Goals != quiz.GoalLearn {
		score += bonusBeyondLearning
	}
	return clamp(score)
}

// AddCapped adds inc to score and clamps the result to [MinScore, MaxScore].
func AddCapped(score, inc int) int {
	return clamp(score + inc)
}

func clamp(score int) int {
	if score > MaxScore {
		return MaxScore
	}
	if score < MinScore {
		return MinScore
	}
	return score
}

// Band is a coarse health score bucket used for dashboard messaging.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandBuilding  Band = "building"
	BandStarting  Band = "starting"
)

// BandFor buckets a score.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandBuilding
	default:
		return BandStarting
	}
}

// Message returns the band message in the youth or general tone.
func (b Band) Message(youth bool) string {
	switch b {
	case BandExcellent:
		if youth {
			return "You're crushing it!"
		}
		return "Excellent financial health!"
	case BandGood:
		if youth {
			return "Great progress! Keep it up!"
		}
		return "Good financial foundation"
	case BandBuilding:
		if youth {
			return "You're on your way!"
		}
		return "Building momentum"
	default:
		if youth {
			return "Every journey starts somewhere!"
		}
		return "Getting started"
	}
}
