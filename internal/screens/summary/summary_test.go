package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/session"
)

func testReport() session.Report {
	return session.Report{
		SessionID: "s1",
		Score:     session.Score{Total: 3, Correct: 2, Incorrect: 1, Accuracy: "66.7%"},
		Duration:  95 * time.Second,
		Wrong:     []string{"Q3"},
	}
}

func testQuestions() []*question.Question {
	return []*question.Question{
		{ID: "Q1", Prompt: "Largest planet?"},
		{ID: "Q3", Prompt: "Water boils at 100C at sea level"},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testReport(), testQuestions())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testReport(), testQuestions()).View(100, 24)
	assert.Contains(t, view, "66.7%")
	assert.Contains(t, view, "1:35")
	assert.Contains(t, view, "Water boils")
}

func TestSummaryScreen_ZeroAnswers(t *testing.T) {
	view := New(session.Report{Score: session.Score{Accuracy: "0%"}}, nil).View(100, 24)
	assert.Contains(t, view, "0%")
	assert.NotContains(t, view, "No mistakes")
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testReport(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testReport(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	hints := New(testReport(), nil).KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
