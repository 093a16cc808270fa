package mastery

import "github.com/abhisek/quizdrill/internal/question"

// Summary aggregates mastery over a question bank for the stats views.
type Summary struct {
	Questions int `json:"questions"`
	New       int `json:"new"`
	Learning  int `json:"learning"`
	Mastered  int `json:"mastered"`

	TotalAttempts   int `json:"totalAttempts"`
	CorrectAttempts int `json:"correctAttempts"`
}

// Summarize counts questions by state at threshold.
func Summarize(questions []question.Question, threshold int) Summary {
	sum := Summary{Questions: len(questions)}
	for _, q := range questions {
		switch StateOf(q.Stats, threshold) {
		case StateNew:
			sum.New++
		case StateLearning:
			sum.Learning++
		case StateMastered:
			sum.Mastered++
		}
		sum.TotalAttempts += q.Stats.TotalAttempts
		sum.CorrectAttempts += q.Stats.CorrectAttempts
	}
	return sum
}

// Eligible is the number of questions a new session would include.
func (s Summary) Eligible() int {
	return s.Questions - s.Mastered
}

// Accuracy is the lifetime accuracy across the bank.
func (s Summary) Accuracy() float64 {
	return Accuracy(question.Stats{TotalAttempts: s.TotalAttempts, CorrectAttempts: s.CorrectAttempts})
}
