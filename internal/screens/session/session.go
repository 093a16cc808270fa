package session

import (
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdrill/internal/library"
	"github.com/abhisek/quizdrill/internal/router"
	"github.com/abhisek/quizdrill/internal/screens/summary"
	sess "github.com/abhisek/quizdrill/internal/session"
	"github.com/abhisek/quizdrill/internal/ui/layout"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayFinish
	overlayQuit
	overlayOverview
)

// SessionScreen runs one practice session.
type SessionScreen struct {
	lib   *library.Library
	state *sess.State

	cursor   int
	overlay  overlay
	ovCursor int

	// grace is set while the last answer's feedback is showing before the
	// finish prompt.
	grace bool

	notice string
	errMsg string
}

var _ router.Screen = (*SessionScreen)(nil)
var _ router.KeyHintProvider = (*SessionScreen)(nil)
var _ router.EscapeHandler = (*SessionScreen)(nil)

// New creates a new SessionScreen.
func New(lib *library.Library) *SessionScreen {
	return &SessionScreen{lib: lib}
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.state != nil {
		return nil
	}
	lib := s.lib
	return func() tea.Msg {
		st := sess.NewState()
		err := lib.Start(st)
		return sessionStartedMsg{State: st, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	return "Practice"
}

// HandlesEscape keeps Esc inside the screen so it can ask before quitting.
func (s *SessionScreen) HandlesEscape() bool {
	return s.errMsg == "" && s.state != nil
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	switch s.overlay {
	case overlayFinish:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish and record"},
			{Key: "N", Description: "Keep going"},
		}
	case overlayQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard session"},
			{Key: "N", Description: "Keep going"},
		}
	case overlayOverview:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Jump"},
			{Key: "Esc", Description: "Close"},
		}
	}
	if s.state.Feedback != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "P", Description: "Prev"},
			{Key: "F", Description: "Finish"},
		}
	}
	hints := make([]layout.KeyHint, 0, 7)
	for _, b := range []key.Binding{keys.Up, keys.Label, keys.Submit, keys.Previous, keys.Overview, keys.Finish, keys.Quit} {
		k, d := hint(b)
		hints = append(hints, layout.KeyHint{Key: k, Description: d})
	}
	return hints
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	switch s.overlay {
	case overlayFinish:
		return s.renderFinishConfirm(width)
	case overlayQuit:
		return renderQuitConfirm(width)
	case overlayOverview:
		return s.renderOverview(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)

	case graceElapsedMsg:
		if s.state != nil && s.state.Session != nil && s.state.Session.ID == msg.SessionID && s.grace {
			s.grace = false
			s.overlay = overlayFinish
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleStarted(msg sessionStartedMsg) (router.Screen, tea.Cmd) {
	if errors.Is(msg.Err, sess.ErrNoEligible) {
		s.errMsg = "Every question is mastered or the bank is empty. Import a bank or lower the threshold."
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.cursor = 0
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, router.Pop
	}
	if s.state == nil || s.state.Phase != sess.PhaseInProgress {
		return s, nil
	}

	switch s.overlay {
	case overlayFinish:
		return s.handleFinishConfirm(msg)
	case overlayQuit:
		return s.handleQuitConfirm(msg)
	case overlayOverview:
		return s.handleOverview(msg)
	}

	// The grace delay ignores input until the finish prompt shows.
	if s.grace {
		return s, nil
	}

	s.notice = ""
	eng := s.lib.Engine()
	q := sess.Current(s.state)

	switch {
	case key.Matches(msg, keys.Quit):
		s.overlay = overlayQuit
	case key.Matches(msg, keys.Finish):
		return s.requestFinish()
	case key.Matches(msg, keys.Overview):
		s.overlay = overlayOverview
		s.ovCursor = s.state.Session.Pointer
	case key.Matches(msg, keys.Previous):
		if err := eng.Previous(s.state); err == nil {
			s.cursor = 0
		}
	case key.Matches(msg, keys.Submit):
		if s.state.Feedback != nil {
			return s.advance()
		}
		fb, err := eng.SubmitPending(s.state)
		if err != nil {
			s.notice = err.Error()
			return s, nil
		}
		if fb == nil {
			return s.advance()
		}
	case s.state.Feedback != nil:
		if key.Matches(msg, keys.Next) {
			return s.advance()
		}
	case key.Matches(msg, keys.Next):
		return s.advance()
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		sess.TogglePending(s.state, q.Options[s.cursor].Label)
	case key.Matches(msg, keys.Label):
		label := strings.ToUpper(msg.String())
		sess.TogglePending(s.state, label)
		for i, o := range q.Options {
			if o.Label == label {
				s.cursor = i
			}
		}
	}
	return s, nil
}

func (s *SessionScreen) advance() (router.Screen, tea.Cmd) {
	res, err := s.lib.Engine().Advance(s.state)
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	switch res.Kind {
	case sess.AdvanceMoved:
		s.cursor = 0
		return s, nil
	case sess.AdvanceFinalizeAfter:
		s.grace = true
		id := s.state.Session.ID
		return s, tea.Tick(res.Delay, func(time.Time) tea.Msg {
			return graceElapsedMsg{SessionID: id}
		})
	default:
		return s.requestFinish()
	}
}

func (s *SessionScreen) requestFinish() (router.Screen, tea.Cmd) {
	if len(s.state.Session.Answers) == 0 {
		s.notice = "Answer at least one question before finishing."
		return s, nil
	}
	s.overlay = overlayFinish
	return s, nil
}

func (s *SessionScreen) handleFinishConfirm(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		s.overlay = overlayNone
		if _, err := s.lib.Finalize(s.state, sess.Confirmed); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		return s, router.Replace(summary.New(*s.state.Report, s.state.Session.Questions))
	case key.Matches(msg, keys.No):
		s.overlay = overlayNone
	}
	return s, nil
}

func (s *SessionScreen) handleQuitConfirm(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		s.overlay = overlayNone
		_ = s.lib.Engine().Abandon(s.state)
		return s, router.Pop
	case key.Matches(msg, keys.No):
		s.overlay = overlayNone
	}
	return s, nil
}

func (s *SessionScreen) handleOverview(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	total := len(s.state.Session.Questions)
	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Overview):
		s.overlay = overlayNone
	case key.Matches(msg, keys.Up):
		if s.ovCursor > 0 {
			s.ovCursor--
		}
	case key.Matches(msg, keys.Down):
		if s.ovCursor < total-1 {
			s.ovCursor++
		}
	case key.Matches(msg, keys.Submit):
		if err := s.lib.Engine().Jump(s.state, s.ovCursor); err == nil {
			s.cursor = 0
		}
		s.overlay = overlayNone
	}
	return s, nil
}
