// Package quiz contains the intake quiz of SmartStart Money.
//
// The quiz asks six fixed questions (age, income, savings, debt, goals,
// experience) after an avatar pre-step and inserts a single emotional
// check-in halfway through. The result is an Answers record that feeds the
// recommendation engine and seeds the progress tracker.
//
// # Machine
//
// Machine is a value type. Every transition returns a new Machine; illegal
// transitions return the receiver unchanged instead of failing:
//
//	m := quiz.Start()
//	m = m.SelectAvatar("avatar3")
//	m = m.Answer(quiz.QuestionAge, "18-25")
//	m = m.Advance()
//
// The states are:
//
//	AvatarSelect -> Question(0..5) -> Complete
//	                    |
//	                    +-> EmotionalCheckin (once, at index 3)
//
// The check-in is keyed on the presence of an emotional state, not on the
// position visited, so going back and forth around the midpoint never shows
// it again once answered.
//
// # Answers
//
// Answers holds closed enums. Answers.Validate names the first missing
// field; it is the only hard failure in the package.
package quiz
