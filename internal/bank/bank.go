package bank

import "github.com/abhisek/quizdrill/internal/question"

// Bank holds the canonical question set in ingestion order together with
// the statistics of every question id ever imported.
type Bank struct {
	questions []*question.Question
	index     map[string]*question.Question
	stats     map[string]question.Stats
}

// New creates a bank from persisted questions and the persisted stats map.
// The map wins over statistics embedded in the questions; finished sessions
// only rewrite the map.
func New(questions []question.Question, stats map[string]question.Stats) *Bank {
	b := &Bank{stats: make(map[string]question.Stats, len(stats))}
	for id, s := range stats {
		b.stats[id] = s
	}
	seeded := make([]question.Question, len(questions))
	for i, q := range questions {
		if s, ok := b.stats[q.ID]; ok {
			q.Stats = s
		}
		seeded[i] = q
	}
	b.install(seeded)
	return b
}

// ReplaceAll swaps in a freshly imported question set. Questions whose id
// has been seen before keep their statistics; new ids start at zero.
func (b *Bank) ReplaceAll(records []question.Question) {
	for _, q := range b.questions {
		b.stats[q.ID] = q.Stats
	}

	next := make([]question.Question, len(records))
	for i, r := range records {
		r.Stats = b.stats[r.ID]
		next[i] = r
	}
	b.install(next)
}

func (b *Bank) install(records []question.Question) {
	questions := make([]*question.Question, len(records))
	index := make(map[string]*question.Question, len(records))
	for i := range records {
		q := records[i]
		questions[i] = &q
		index[q.ID] = &q
		b.stats[q.ID] = q.Stats
	}
	b.questions = questions
	b.index = index
}

// LookupByID returns the question with the given id.
func (b *Bank) LookupByID(id string) (*question.Question, bool) {
	q, ok := b.index[id]
	return q, ok
}

// ListEligible returns the questions whose streak is below threshold, in
// bank order.
func (b *Bank) ListEligible(threshold int) []*question.Question {
	var eligible []*question.Question
	for _, q := range b.questions {
		if q.Stats.ConsecutiveCorrect < threshold {
			eligible = append(eligible, q)
		}
	}
	return eligible
}

// EligibleCount returns len(ListEligible(threshold)) without allocating.
func (b *Bank) EligibleCount(threshold int) int {
	n := 0
	for _, q := range b.questions {
		if q.Stats.ConsecutiveCorrect < threshold {
			n++
		}
	}
	return n
}

// ColoredReview returns spreadsheet-sourced questions that carry at least
// one option colour. It is empty for banks imported from delimited text.
func (b *Bank) ColoredReview() []*question.Question {
	var out []*question.Question
	for _, q := range b.questions {
		if q.Source == question.SourceSpreadsheet && q.HasColors() {
			out = append(out, q)
		}
	}
	return out
}

// Stats returns the statistics recorded for id, zero when unknown.
func (b *Bank) Stats(id string) question.Stats {
	return b.stats[id]
}

// UpdateStats records the statistics of id. Ids that are not in the current
// bank are kept in the stats map so a later re-import picks them up.
func (b *Bank) UpdateStats(id string, s question.Stats) {
	b.stats[id] = s
	if q, ok := b.index[id]; ok {
		q.Stats = s
	}
}

// ResetStats zeroes the statistics of every question and forgets ids that
// are no longer in the bank.
func (b *Bank) ResetStats() {
	b.stats = make(map[string]question.Stats, len(b.questions))
	for _, q := range b.questions {
		q.Stats = question.Stats{}
		b.stats[q.ID] = q.Stats
	}
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns copies of the questions in bank order.
func (b *Bank) All() []question.Question {
	out := make([]question.Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = *q
	}
	return out
}

// StatsMap returns a copy of the per-id statistics, including ids that are
// no longer in the bank.
func (b *Bank) StatsMap() map[string]question.Stats {
	out := make(map[string]question.Stats, len(b.stats))
	for id, s := range b.stats {
		out[id] = s
	}
	return out
}
