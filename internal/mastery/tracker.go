package mastery

import (
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/session"
)

// DefaultThreshold is the streak length at which a question is mastered.
const DefaultThreshold = 3

// StatsStore holds per-question statistics. bank.Bank implements it.
type StatsStore interface {
	Stats(id string) question.Stats
	UpdateStats(id string, s question.Stats)
}

// Tracker applies finished sessions to the mastery statistics.
type Tracker struct {
	store     StatsStore
	threshold int
	log       zerolog.Logger
}

// NewTracker creates a tracker over store. threshold is only used to report
// state transitions; it never changes how statistics are updated.
func NewTracker(store StatsStore, threshold int, log zerolog.Logger) *Tracker {
	return &Tracker{
		store:     store,
		threshold: threshold,
		log:       log.With().Str("component", "mastery").Logger(),
	}
}

// SetThreshold updates the threshold used for transitions.
func (t *Tracker) SetThreshold(n int) {
	t.threshold = n
}

// ApplySession applies every answer of a finished session. It must be called
// once per session; a second call counts the answers again.
func (t *Tracker) ApplySession(answers []session.AnswerRecord) {
	for _, tr := range t.Apply(answers) {
		t.log.Info().
			Str("question_id", tr.QuestionID).
			Str("from", string(tr.From)).
			Str("to", string(tr.To)).
			Str("trigger", tr.Trigger).
			Msg("mastery state changed")
	}
}

// Apply updates statistics for answers in order and returns the resulting
// state transitions, one per question at most. Ids without a question in the
// store are still recorded so a later re-import picks them up.
func (t *Tracker) Apply(answers []session.AnswerRecord) []StateTransition {
	before := make(map[string]MasteryState)
	var order []string

	for _, a := range answers {
		s := t.store.Stats(a.QuestionID)
		if _, seen := before[a.QuestionID]; !seen {
			before[a.QuestionID] = StateOf(s, t.threshold)
			order = append(order, a.QuestionID)
		}
		RecordAnswer(&s, a.IsCorrect)
		t.store.UpdateStats(a.QuestionID, s)
	}

	var transitions []StateTransition
	for _, id := range order {
		from := before[id]
		to := StateOf(t.store.Stats(id), t.threshold)
		if from == to {
			continue
		}
		transitions = append(transitions, StateTransition{
			QuestionID: id,
			From:       from,
			To:         to,
			Trigger:    trigger(from, to),
		})
	}
	return transitions
}

// RecordAnswer updates s for one answer. Only correctness affects the
// streak; the attempt counters never decrease.
func RecordAnswer(s *question.Stats, correct bool) {
	s.TotalAttempts++
	if correct {
		s.CorrectAttempts++
		s.ConsecutiveCorrect++
	} else {
		s.ConsecutiveCorrect = 0
	}
}

// Accuracy returns the lifetime accuracy ratio.
func Accuracy(s question.Stats) float64 {
	if s.TotalAttempts == 0 {
		return 0.0
	}
	return float64(s.CorrectAttempts) / float64(s.TotalAttempts)
}

func trigger(from, to MasteryState) string {
	switch {
	case to == StateMastered:
		return "streak-reached"
	case from == StateMastered:
		return "streak-broken"
	default:
		return "first-attempt"
	}
}
