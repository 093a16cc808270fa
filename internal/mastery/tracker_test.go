package mastery

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/session"
)

type mapStore map[string]question.Stats

func (m mapStore) Stats(id string) question.Stats        { return m[id] }
func (m mapStore) UpdateStats(id string, s question.Stats) { m[id] = s }

func answer(id string, correct bool) session.AnswerRecord {
	return session.AnswerRecord{QuestionID: id, IsCorrect: correct}
}

func TestRecordAnswer_Monotonicity(t *testing.T) {
	var s question.Stats
	seq := []bool{true, true, false, true, true, true, false}
	incorrect := 0

	for i, correct := range seq {
		prev := s
		RecordAnswer(&s, correct)

		if correct {
			if s.ConsecutiveCorrect != prev.ConsecutiveCorrect+1 {
				t.Errorf("step %d: streak %d -> %d, want +1", i, prev.ConsecutiveCorrect, s.ConsecutiveCorrect)
			}
		} else {
			incorrect++
			if s.ConsecutiveCorrect != 0 {
				t.Errorf("step %d: streak = %d, want reset to 0", i, s.ConsecutiveCorrect)
			}
		}
		if s.TotalAttempts < prev.TotalAttempts || s.CorrectAttempts < prev.CorrectAttempts {
			t.Errorf("step %d: counters decreased", i)
		}
		if s.TotalAttempts != s.CorrectAttempts+incorrect {
			t.Errorf("step %d: total %d != correct %d + incorrect %d", i, s.TotalAttempts, s.CorrectAttempts, incorrect)
		}
	}
}

func TestApplySession_UpdatesEveryAnswer(t *testing.T) {
	store := mapStore{
		"Q1": {ConsecutiveCorrect: 2, TotalAttempts: 4, CorrectAttempts: 3},
		"Q3": {ConsecutiveCorrect: 1, TotalAttempts: 1, CorrectAttempts: 1},
	}
	tr := NewTracker(store, DefaultThreshold, zerolog.Nop())

	tr.ApplySession([]session.AnswerRecord{
		answer("Q1", true),
		answer("Q2", true),
		answer("Q3", false),
		answer("Q2", false),
		answer("Q2", true),
	})

	want := map[string]question.Stats{
		"Q1": {ConsecutiveCorrect: 3, TotalAttempts: 5, CorrectAttempts: 4},
		"Q2": {ConsecutiveCorrect: 1, TotalAttempts: 3, CorrectAttempts: 2},
		"Q3": {ConsecutiveCorrect: 0, TotalAttempts: 2, CorrectAttempts: 1},
	}
	for id, w := range want {
		if got := store[id]; got != w {
			t.Errorf("%s = %+v, want %+v", id, got, w)
		}
	}
}

func TestApplySession_DoubleApplyCountsTwice(t *testing.T) {
	store := mapStore{}
	tr := NewTracker(store, DefaultThreshold, zerolog.Nop())
	answers := []session.AnswerRecord{answer("Q1", true)}

	tr.ApplySession(answers)
	tr.ApplySession(answers)

	if got := store["Q1"]; got.TotalAttempts != 2 || got.ConsecutiveCorrect != 2 {
		t.Errorf("Q1 = %+v, want two applications", got)
	}
}

func TestApply_Transitions(t *testing.T) {
	store := mapStore{
		"Q1": {ConsecutiveCorrect: 2, TotalAttempts: 2, CorrectAttempts: 2},
		"Q2": {ConsecutiveCorrect: 3, TotalAttempts: 3, CorrectAttempts: 3},
		"Q3": {ConsecutiveCorrect: 1, TotalAttempts: 3, CorrectAttempts: 1},
	}
	tr := NewTracker(store, 3, zerolog.Nop())

	got := tr.Apply([]session.AnswerRecord{
		answer("Q1", true),
		answer("Q2", false),
		answer("Q3", true),
		answer("Q4", false),
	})

	want := []StateTransition{
		{QuestionID: "Q1", From: StateLearning, To: StateMastered, Trigger: "streak-reached"},
		{QuestionID: "Q2", From: StateMastered, To: StateLearning, Trigger: "streak-broken"},
		{QuestionID: "Q4", From: StateNew, To: StateLearning, Trigger: "first-attempt"},
	}
	if len(got) != len(want) {
		t.Fatalf("transitions = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	qs := []question.Question{
		{ID: "a"},
		{ID: "b", Stats: question.Stats{ConsecutiveCorrect: 1, TotalAttempts: 2, CorrectAttempts: 1}},
		{ID: "c", Stats: question.Stats{ConsecutiveCorrect: 3, TotalAttempts: 3, CorrectAttempts: 3}},
	}
	sum := Summarize(qs, 3)

	if sum.New != 1 || sum.Learning != 1 || sum.Mastered != 1 {
		t.Errorf("Summary = %+v", sum)
	}
	if sum.Eligible() != 2 {
		t.Errorf("Eligible = %d, want 2", sum.Eligible())
	}
	if acc := sum.Accuracy(); acc < 0.79 || acc > 0.81 {
		t.Errorf("Accuracy = %v, want 0.8", acc)
	}
}
