package session

import (
	"time"

	"github.com/abhisek/quizdrill/internal/question"
)

// SessionPhase represents the lifecycle phase of the session context.
type SessionPhase int

const (
	PhaseIdle       SessionPhase = iota // No session
	PhaseInProgress                     // Serving questions
	PhaseFinished                       // Finalized, report available
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// AnswerRecord is one submitted answer. Records are append-only.
type AnswerRecord struct {
	QuestionID string    `json:"questionId"`
	Submitted  string    `json:"submitted"`
	Correct    string    `json:"correct"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Feedback is the immediate result shown after a submission.
type Feedback struct {
	Position   int // 1-based position in the session
	QuestionID string
	Submitted  string
	Correct    string
	IsCorrect  bool
}

// Session is the frozen question snapshot plus the answers given so far.
type Session struct {
	// ID is the UUID for this session.
	ID string

	StartedAt time.Time
	EndedAt   time.Time
	Threshold int

	// Questions is the eligible set at start, in bank order. It never
	// changes after Start.
	Questions []*question.Question

	// Pointer is the index of the current question.
	Pointer int

	Answers   []AnswerRecord
	Correct   int
	Incorrect int
}

// State is the session context threaded through every engine transition.
// The zero value is an idle context.
type State struct {
	Phase   SessionPhase
	Session *Session

	// Pending is the not-yet-submitted selection for the current question.
	Pending []string

	// Feedback is set by a submission and cleared by navigation or a skip.
	Feedback *Feedback

	// Report and Entry are set when the session is finalized.
	Report *Report
	Entry  *HistoryEntry
}

// NewState returns an idle session context.
func NewState() *State {
	return &State{Phase: PhaseIdle}
}

// HistoryEntry is the immutable record of a finalized session.
type HistoryEntry struct {
	SessionID string         `json:"sessionId"`
	StartedAt time.Time      `json:"startedAt"`
	EndedAt   time.Time      `json:"endedAt"`
	Answers   []AnswerRecord `json:"answers"`
	Score     Score          `json:"score"`
}
