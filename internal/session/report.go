package session

import (
	"fmt"
	"time"
)

// Score is the aggregated result of a session.
type Score struct {
	Total     int    `json:"total"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	Accuracy  string `json:"accuracy"`
}

// Report holds the data displayed on the summary screen.
type Report struct {
	SessionID string
	Score     Score
	Duration  time.Duration

	// Wrong lists the ids of incorrectly answered questions in answer order,
	// without duplicates.
	Wrong []string
}

// BuildReport aggregates a session. Total counts answer records; Correct
// and Incorrect are the running counters.
func BuildReport(s *Session) Report {
	var wrong []string
	seen := make(map[string]bool)
	for _, a := range s.Answers {
		if !a.IsCorrect && !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			wrong = append(wrong, a.QuestionID)
		}
	}

	var duration time.Duration
	if !s.EndedAt.IsZero() {
		duration = s.EndedAt.Sub(s.StartedAt)
	}

	total := len(s.Answers)
	return Report{
		SessionID: s.ID,
		Score: Score{
			Total:     total,
			Correct:   s.Correct,
			Incorrect: s.Incorrect,
			Accuracy:  FormatAccuracy(s.Correct, total),
		},
		Duration: duration,
		Wrong:    wrong,
	}
}

// FormatAccuracy renders correct/total as a percentage with one decimal,
// e.g. "33.3%". It returns "0%" when total is zero.
func FormatAccuracy(correct, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(correct)/float64(total)*100)
}
