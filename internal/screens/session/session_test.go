package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdrill/internal/library"
	"github.com/abhisek/quizdrill/internal/router"
	sess "github.com/abhisek/quizdrill/internal/session"
	"github.com/abhisek/quizdrill/internal/store"
)

const threeQuestions = "id,type,prompt,A,B,C,D,E,answer\n" +
	"Q1,single,Largest planet?,Mars,Jupiter,Venus,,,B\n" +
	"Q2,multi,Even numbers?,2,3,4,,,\"A,C\"\n" +
	"Q3,boolean,Water boils at 100C at sea level,,,,,,A\n"

func newTestLibrary(t *testing.T, bank string) *library.Library {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	lib := library.Open(context.Background(), store.NewRepo(s.KV()), library.Options{
		Encoding:   "utf-8",
		GraceDelay: time.Millisecond,
		Log:        zerolog.Nop(),
	})
	if bank != "" {
		_, err = lib.Import(context.Background(), "bank.csv", []byte(bank))
		require.NoError(t, err)
	}
	return lib
}

// startedScreen returns a screen with the session initialized.
func startedScreen(t *testing.T, lib *library.Library) *SessionScreen {
	t.Helper()
	s := New(lib)
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	return s
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func press(s *SessionScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

func TestSessionScreen_Title(t *testing.T) {
	s := New(nil)
	if s.Title() != "Practice" {
		t.Errorf("Title = %q, want %q", s.Title(), "Practice")
	}
}

func TestSessionScreen_StartsSession(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, threeQuestions))

	require.NotNil(t, s.state)
	assert.Equal(t, sess.PhaseInProgress, s.state.Phase)
	assert.Len(t, s.state.Session.Questions, 3)
	assert.True(t, s.HandlesEscape())
	assert.Contains(t, s.View(100, 30), "Largest planet?")
}

func TestSessionScreen_NoEligible(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, ""))

	assert.Nil(t, s.state)
	assert.NotEmpty(t, s.errMsg)
	assert.False(t, s.HandlesEscape())

	cmd := press(s, keyPress('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestSessionScreen_FullRun(t *testing.T) {
	lib := newTestLibrary(t, threeQuestions)
	s := startedScreen(t, lib)

	// Q1 single, correct.
	press(s, keyPress('b'), specialKey(tea.KeyEnter))
	require.NotNil(t, s.state.Feedback)
	assert.True(t, s.state.Feedback.IsCorrect)
	press(s, specialKey(tea.KeyEnter))
	assert.Equal(t, 1, s.state.Session.Pointer)

	// Q2 multi, toggled via cursor and label.
	press(s, keyPress('a'), specialKey(tea.KeyDown), specialKey(tea.KeyDown), keyPress(' '))
	assert.ElementsMatch(t, []string{"A", "C"}, s.state.Pending)
	press(s, specialKey(tea.KeyEnter))
	assert.True(t, s.state.Feedback.IsCorrect)
	press(s, keyPress('n'))
	assert.Equal(t, 2, s.state.Session.Pointer)

	// Q3 boolean, wrong. Advancing from the last answer waits out the grace delay.
	press(s, keyPress('b'), specialKey(tea.KeyEnter))
	assert.False(t, s.state.Feedback.IsCorrect)
	cmd := press(s, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, s.grace)

	press(s, keyPress('f'))
	assert.Equal(t, overlayNone, s.overlay, "input ignored during grace")

	s.Update(graceElapsedMsg{SessionID: s.state.Session.ID})
	assert.Equal(t, overlayFinish, s.overlay)
	assert.Contains(t, s.View(100, 30), "66.7%")

	cmd = press(s, keyPress('y'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Session Summary", msg.Screen.Title())

	assert.Equal(t, sess.PhaseFinished, s.state.Phase)
	q1, _ := lib.Bank().LookupByID("Q1")
	assert.Equal(t, 1, q1.Stats.ConsecutiveCorrect)
	q3, _ := lib.Bank().LookupByID("Q3")
	assert.Equal(t, 0, q3.Stats.ConsecutiveCorrect)
	assert.Equal(t, 1, q3.Stats.TotalAttempts)
}

func TestSessionScreen_EnterWithoutSelectionSkips(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, threeQuestions))

	press(s, specialKey(tea.KeyEnter))
	assert.Equal(t, 1, s.state.Session.Pointer)
	assert.Empty(t, s.state.Session.Answers)
}

func TestSessionScreen_FinishNeedsAnswers(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, threeQuestions))

	press(s, keyPress('f'))
	assert.Equal(t, overlayNone, s.overlay)
	assert.NotEmpty(t, s.notice)

	press(s, keyPress('a'), specialKey(tea.KeyEnter), keyPress('f'))
	assert.Equal(t, overlayFinish, s.overlay)

	press(s, keyPress('n'))
	assert.Equal(t, overlayNone, s.overlay)
	assert.Equal(t, sess.PhaseInProgress, s.state.Phase)
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	lib := newTestLibrary(t, threeQuestions)
	s := startedScreen(t, lib)
	press(s, keyPress('b'), specialKey(tea.KeyEnter))

	press(s, specialKey(tea.KeyEscape))
	if s.overlay != overlayQuit {
		t.Fatal("expected quit confirm after Esc")
	}
	press(s, keyPress('n'))
	if s.overlay != overlayNone {
		t.Fatal("expected quit confirm dismissed after N")
	}

	press(s, specialKey(tea.KeyEscape))
	cmd := press(s, keyPress('y'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, sess.PhaseIdle, s.state.Phase)

	q1, _ := lib.Bank().LookupByID("Q1")
	assert.Zero(t, q1.Stats.TotalAttempts, "abandoned answers are not recorded")
}

func TestSessionScreen_OverviewJump(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, threeQuestions))
	press(s, keyPress('b'), specialKey(tea.KeyEnter))

	press(s, keyPress('o'))
	require.Equal(t, overlayOverview, s.overlay)
	view := s.View(100, 30)
	assert.Contains(t, view, "✓ Q1")
	assert.Contains(t, view, "· Q3")

	press(s, specialKey(tea.KeyDown), specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	assert.Equal(t, overlayNone, s.overlay)
	assert.Equal(t, 2, s.state.Session.Pointer)

	press(s, keyPress('p'))
	assert.Equal(t, 1, s.state.Session.Pointer)
}

func TestSessionScreen_StaleGraceIgnored(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, threeQuestions))
	s.Update(graceElapsedMsg{SessionID: "other"})
	assert.Equal(t, overlayNone, s.overlay)
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s := startedScreen(t, newTestLibrary(t, threeQuestions))
	assert.NotEmpty(t, s.KeyHints())

	press(s, specialKey(tea.KeyEscape))
	hints := s.KeyHints()
	require.Len(t, hints, 2)
	assert.Equal(t, "Y", hints[0].Key)
}
