package quiz

// QuestionID identifies one of the six fixed quiz questions.
type QuestionID string

const (
	QuestionAge        QuestionID = "age"
	QuestionIncome     QuestionID = "income"
	QuestionSavings    QuestionID = "savings"
	QuestionDebt       QuestionID = "debt"
	QuestionGoals      QuestionID = "goals"
	QuestionExperience QuestionID = "experience"
)

// Question describes one step of the quiz: its id and the closed set of values
// it accepts. Labels and help text belong to the presentation layer.
type Question struct {
	ID      QuestionID `json:"id"`
	Options []string   `json:"options"`
}

// Allows reports whether value is one of the question's options.
func (q Question) Allows(value string) bool {
	for _, o := range q.Options {
		if o == value {
			return true
		}
	}
	return false
}

var questions = []Question{
	{ID: QuestionAge, Options: []string{"13-17", "18-25", "26-35", "36+"}},
	{ID: QuestionIncome, Options: []string{"none", "under-15k", "15k-40k", "40k-70k", "over-70k"}},
	{ID: QuestionSavings, Options: []string{"none", "small", "some", "moderate", "substantial"}},
	{ID: QuestionDebt, Options: []string{"none", "low", "moderate", "high"}},
	{ID: QuestionGoals, Options: []string{"learn", "save", "debt", "big-purchase", "invest"}},
	{ID: QuestionExperience, Options: []string{"new", "beginner", "intermediate", "advanced"}},
}

// QuestionCount is the fixed number of questions.
const QuestionCount = 6

// CheckinIndex is the question index at which the emotional check-in is shown.
const CheckinIndex = QuestionCount / 2

// Questions returns the ordered question list. The slice is a copy.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = Question{ID: q.ID, Options: append([]string(nil), q.Options...)}
	}
	return out
}

// QuestionAt returns the question at index i.
func QuestionAt(i int) (Question, bool) {
	if i < 0 || i >= len(questions) {
		return Question{}, false
	}
	return questions[i], true
}

// Avatars lists the avatar ids offered by clients. The machine itself treats
// the avatar as an opaque string.
var Avatars = []string{
	"avatar1", "avatar2", "avatar3", "avatar4",
	"avatar5", "avatar6", "avatar7", "avatar8",
}

// Emotions lists the check-in choices offered by clients.
var Emotions = []string{"confident", "okay", "nervous", "confused"}

var encouragementMessages = []string{
	"You're doing great! Every question brings you closer to financial confidence.",
	"Nice progress! Remember, understanding your money situation is the first step to success.",
	"Keep going! You're building a foundation that will serve you for life.",
	"Awesome! Financial literacy is a superpower, and you're unlocking it.",
}

// Encouragement returns the message shown after answering question i.
// Every second question gets one.
func Encouragement(i int) (string, bool) {
	if i < 0 || i >= QuestionCount || (i+1)%2 != 0 {
		return "", false
	}
	return encouragementMessages[i%len(encouragementMessages)], true
}
