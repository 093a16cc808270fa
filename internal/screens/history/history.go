package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/router"
	"github.com/abhisek/quizdrill/internal/session"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/layout"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// Limit caps how many sessions the screen lists.
const Limit = 50

// Source loads the history log, newest first.
type Source interface {
	History(ctx context.Context, limit int) ([]session.HistoryEntry, error)
}

type historyLoadedMsg struct {
	Entries []session.HistoryEntry
	Err     error
}

// HistoryScreen displays past sessions.
type HistoryScreen struct {
	source   Source
	keys     components.KeyMap
	entries  []session.HistoryEntry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ router.Screen = (*HistoryScreen)(nil)
var _ router.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		keys:     components.DefaultKeys,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.source.History(context.Background(), Limit)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return s, router.Pop
		case key.Matches(msg, s.keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case key.Matches(msg, s.keys.Select):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No finished sessions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d answered  %d correct  %s",
			prefix,
			e.StartedAt.Local().Format("Jan 02 15:04"),
			formatDuration(e),
			e.Score.Total, e.Score.Correct, e.Score.Accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderAnswers(e, width))
		}
	}

	return b.String()
}

func renderAnswers(e session.HistoryEntry, width int) string {
	var b strings.Builder
	for _, a := range e.Answers {
		mark, style := "✓", theme.Correct
		if !a.IsCorrect {
			mark, style = "✗", theme.Incorrect
		}
		line := fmt.Sprintf("    %s %-12s answered %-5s correct %s", mark, a.QuestionID, a.Submitted, a.Correct)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDuration(e session.HistoryEntry) string {
	d := e.EndedAt.Sub(e.StartedAt)
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
