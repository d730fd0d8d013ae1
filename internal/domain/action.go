package domain

import "fmt"

// ActionType enumerates every user action the progression engine reacts to.
// The string values are the wire format used by the surrounding application.
type ActionType string

const (
	ActionForumAnswer          ActionType = "forum_answer"
	ActionForumAnswerValidated ActionType = "forum_answer_validated"
	ActionQuizComplete         ActionType = "quiz_complete"
	ActionQuizScore            ActionType = "quiz_score"
	ActionCourseComplete       ActionType = "course_complete"
	ActionFicheCreate          ActionType = "fiche_create"
	ActionFicheLikeReceived    ActionType = "fiche_like_received"
)

// ParseActionType validates a wire-format action string.
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionForumAnswer, ActionForumAnswerValidated, ActionQuizComplete,
		ActionQuizScore, ActionCourseComplete, ActionFicheCreate, ActionFicheLikeReceived:
		return ActionType(s), nil
	}
	return "", ErrValidation(fmt.Sprintf("unknown action type: %s", s))
}

// ActionMetadata carries the optional payload attached to an action event.
type ActionMetadata struct {
	Score   int    `json:"score,omitempty"`   // quiz score percentage
	Subject string `json:"subject,omitempty"` // fiche subject tag
}

// Forum answer statuses that count as validated. The surrounding app stores
// these labels verbatim.
const (
	AnswerStatusValidated  = "Validée"
	AnswerStatusBestAnswer = "Meilleure Réponse"
)
