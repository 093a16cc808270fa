package mastery

import "github.com/abhisek/quizdrill/internal/question"

// MasteryState represents a question's position in the mastery lifecycle.
type MasteryState string

const (
	StateNew      MasteryState = "new"
	StateLearning MasteryState = "learning"
	StateMastered MasteryState = "mastered"
)

// StateOf derives the mastery state from statistics. A question is mastered
// once its streak reaches threshold, which also removes it from sessions.
func StateOf(s question.Stats, threshold int) MasteryState {
	switch {
	case s.TotalAttempts == 0:
		return StateNew
	case s.ConsecutiveCorrect >= threshold:
		return StateMastered
	default:
		return StateLearning
	}
}

// StateTransition records a mastery state change for display and logging.
type StateTransition struct {
	QuestionID string
	From       MasteryState
	To         MasteryState
	Trigger    string // "first-attempt", "streak-reached", "streak-broken"
}
