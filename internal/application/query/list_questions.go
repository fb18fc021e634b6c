package query

import "github.com/smartstart/smartstart-money/internal/domain/quiz"

// QuestionsDTO describes the quiz for clients.
type QuestionsDTO struct {
	Questions    []quiz.Question `json:"questions"`
	CheckinIndex int             `json:"checkin_index"`
	Avatars      []string        `json:"avatars"`
	Emotions     []string        `json:"emotions"`
}

// ListQuestions returns the fixed quiz definition. It needs no session.
func ListQuestions() QuestionsDTO {
	return QuestionsDTO{
		Questions:    quiz.Questions(),
		CheckinIndex: quiz.CheckinIndex,
		Avatars:      append([]string(nil), quiz.Avatars...),
		Emotions:     append([]string(nil), quiz.Emotions...),
	}
}
