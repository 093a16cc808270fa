package bank

import (
	"testing"

	"github.com/abhisek/quizdrill/internal/question"
)

func testQuestion(id string) question.Question {
	return question.Question{
		ID:      id,
		Type:    question.TypeSingle,
		Prompt:  "prompt " + id,
		Options: []question.Option{{Label: "A", Text: "a"}, {Label: "B", Text: "b"}},
		Answer:  "A",
		Source:  question.SourceDelimited,
	}
}

func ids(qs []*question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReplaceAll_CarriesStats(t *testing.T) {
	b := New(nil, nil)
	b.ReplaceAll([]question.Question{testQuestion("q1"), testQuestion("q2")})
	b.UpdateStats("q1", question.Stats{ConsecutiveCorrect: 2, TotalAttempts: 3, CorrectAttempts: 2})

	// q2 dropped, q3 new.
	b.ReplaceAll([]question.Question{testQuestion("q3"), testQuestion("q1")})

	if got := ids(b.ListEligible(10)); !equalIDs(got, []string{"q3", "q1"}) {
		t.Fatalf("bank order = %v, want [q3 q1]", got)
	}
	q1, ok := b.LookupByID("q1")
	if !ok {
		t.Fatal("q1 missing after re-import")
	}
	if q1.Stats.ConsecutiveCorrect != 2 || q1.Stats.TotalAttempts != 3 {
		t.Errorf("q1 stats = %+v, want carried over", q1.Stats)
	}
	q3, _ := b.LookupByID("q3")
	if q3.Stats != (question.Stats{}) {
		t.Errorf("q3 stats = %+v, want zero", q3.Stats)
	}
	if _, ok := b.LookupByID("q2"); ok {
		t.Error("q2 should be gone")
	}
}

func TestReplaceAll_RestoresDroppedID(t *testing.T) {
	b := New(nil, nil)
	b.ReplaceAll([]question.Question{testQuestion("q1")})
	b.UpdateStats("q1", question.Stats{ConsecutiveCorrect: 1, TotalAttempts: 1, CorrectAttempts: 1})

	b.ReplaceAll([]question.Question{testQuestion("q2")})
	b.ReplaceAll([]question.Question{testQuestion("q1")})

	q1, _ := b.LookupByID("q1")
	if q1.Stats.ConsecutiveCorrect != 1 {
		t.Errorf("q1 streak = %d, want 1 after coming back", q1.Stats.ConsecutiveCorrect)
	}
}

func TestNew_SeedsFromStatsMap(t *testing.T) {
	stats := map[string]question.Stats{"old": {TotalAttempts: 4}}
	b := New([]question.Question{testQuestion("q1")}, stats)

	if got := b.Stats("old"); got.TotalAttempts != 4 {
		t.Errorf("Stats(old) = %+v, want TotalAttempts 4", got)
	}
	b.ReplaceAll([]question.Question{testQuestion("old")})
	q, _ := b.LookupByID("old")
	if q.Stats.TotalAttempts != 4 {
		t.Errorf("re-imported stats = %+v, want seeded from map", q.Stats)
	}
}

func TestNew_StatsMapWinsOverEmbedded(t *testing.T) {
	q := testQuestion("q1")
	q.Stats = question.Stats{ConsecutiveCorrect: 1, TotalAttempts: 1, CorrectAttempts: 1}
	q2 := testQuestion("q2")
	q2.Stats = question.Stats{TotalAttempts: 2}

	b := New([]question.Question{q, q2}, map[string]question.Stats{
		"q1": {ConsecutiveCorrect: 3, TotalAttempts: 4, CorrectAttempts: 3},
	})

	got, _ := b.LookupByID("q1")
	if got.Stats.ConsecutiveCorrect != 3 || got.Stats.TotalAttempts != 4 {
		t.Errorf("q1 stats = %+v, want the stats map entry", got.Stats)
	}
	got, _ = b.LookupByID("q2")
	if got.Stats.TotalAttempts != 2 {
		t.Errorf("q2 stats = %+v, want embedded stats when the map has no entry", got.Stats)
	}
}

func TestListEligible_Threshold(t *testing.T) {
	b := New([]question.Question{testQuestion("q1"), testQuestion("q2"), testQuestion("q3")}, nil)
	b.UpdateStats("q2", question.Stats{ConsecutiveCorrect: 3, TotalAttempts: 3, CorrectAttempts: 3})

	if got := ids(b.ListEligible(3)); !equalIDs(got, []string{"q1", "q3"}) {
		t.Errorf("ListEligible(3) = %v, want [q1 q3]", got)
	}
	if got := b.EligibleCount(3); got != 2 {
		t.Errorf("EligibleCount(3) = %d, want 2", got)
	}
	if got := ids(b.ListEligible(4)); !equalIDs(got, []string{"q1", "q2", "q3"}) {
		t.Errorf("ListEligible(4) = %v, want all", got)
	}

	// Streak broken: q2 comes back.
	b.UpdateStats("q2", question.Stats{ConsecutiveCorrect: 0, TotalAttempts: 4, CorrectAttempts: 3})
	if got := b.EligibleCount(3); got != 3 {
		t.Errorf("EligibleCount(3) after reset = %d, want 3", got)
	}
}

func TestColoredReview(t *testing.T) {
	plain := testQuestion("plain")
	colored := testQuestion("colored")
	colored.Source = question.SourceSpreadsheet
	colored.Options[1].Color = "#FF0000"
	uncolored := testQuestion("sheet")
	uncolored.Source = question.SourceSpreadsheet

	b := New([]question.Question{plain, colored, uncolored}, nil)
	if got := ids(b.ColoredReview()); !equalIDs(got, []string{"colored"}) {
		t.Errorf("ColoredReview = %v, want [colored]", got)
	}

	b.ReplaceAll([]question.Question{plain})
	if got := b.ColoredReview(); len(got) != 0 {
		t.Errorf("ColoredReview = %v, want empty", ids(got))
	}
}

func TestResetStats(t *testing.T) {
	b := New([]question.Question{testQuestion("q1")}, map[string]question.Stats{"gone": {TotalAttempts: 9}})
	b.UpdateStats("q1", question.Stats{ConsecutiveCorrect: 5, TotalAttempts: 5, CorrectAttempts: 5})

	b.ResetStats()

	if got := b.Stats("q1"); got != (question.Stats{}) {
		t.Errorf("q1 stats = %+v, want zero", got)
	}
	if _, ok := b.StatsMap()["gone"]; ok {
		t.Error("stats for ids outside the bank should be dropped")
	}
}
