package session

import (
	"slices"
	"strings"

	"github.com/abhisek/quizdrill/internal/question"
)

// AnswerStatus is the overview state of one session question.
type AnswerStatus string

const (
	StatusUnanswered AnswerStatus = "unanswered"
	StatusCorrect    AnswerStatus = "correct"
	StatusIncorrect  AnswerStatus = "incorrect"
)

// QuestionStatus is one cell of the session overview.
type QuestionStatus struct {
	Index      int
	QuestionID string
	Status     AnswerStatus
}

// Current returns the question under the pointer, or nil when no session
// is loaded.
func Current(st *State) *question.Question {
	if st.Session == nil || len(st.Session.Questions) == 0 {
		return nil
	}
	return st.Session.Questions[st.Session.Pointer]
}

// Progress returns the 1-based position of the current question and the
// session length.
func Progress(st *State) (position, total int) {
	if st.Session == nil {
		return 0, 0
	}
	return st.Session.Pointer + 1, len(st.Session.Questions)
}

// IsLast reports whether the pointer is on the final question.
func IsLast(st *State) bool {
	return st.Session != nil && st.Session.Pointer == len(st.Session.Questions)-1
}

// Overview returns the status of every session question. A question
// answered more than once shows its latest result.
func Overview(st *State) []QuestionStatus {
	if st.Session == nil {
		return nil
	}

	latest := make(map[string]bool, len(st.Session.Answers))
	for _, a := range st.Session.Answers {
		latest[a.QuestionID] = a.IsCorrect
	}

	out := make([]QuestionStatus, len(st.Session.Questions))
	for i, q := range st.Session.Questions {
		status := StatusUnanswered
		if correct, ok := latest[q.ID]; ok {
			status = StatusIncorrect
			if correct {
				status = StatusCorrect
			}
		}
		out[i] = QuestionStatus{Index: i, QuestionID: q.ID, Status: status}
	}
	return out
}

// TogglePending updates the pending selection with label. Multi-choice
// questions toggle membership; other types replace the selection.
func TogglePending(st *State, label string) {
	q := Current(st)
	if q == nil {
		return
	}
	label = strings.ToUpper(strings.TrimSpace(label))
	if _, ok := q.Option(label); !ok {
		return
	}

	if q.Type != question.TypeMulti {
		st.Pending = []string{label}
		return
	}
	if i := slices.Index(st.Pending, label); i >= 0 {
		st.Pending = slices.Delete(slices.Clone(st.Pending), i, i+1)
		return
	}
	st.Pending = append(slices.Clone(st.Pending), label)
}

// SetPending replaces the pending selection.
func SetPending(st *State, labels []string) {
	st.Pending = slices.Clone(labels)
}
