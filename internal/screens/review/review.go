// Package review shows spreadsheet-imported questions whose options carry
// fill colours, one at a time, with the colours rendered.
package review

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/router"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/layout"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

var (
	prevKey   = key.NewBinding(key.WithKeys("left", "h", "p"))
	nextKey   = key.NewBinding(key.WithKeys("right", "l", "n"))
	answerKey = key.NewBinding(key.WithKeys("space", " ", "enter"))
)

// ReviewScreen pages through colour-annotated questions.
type ReviewScreen struct {
	questions  []*question.Question
	index      int
	showAnswer bool
}

var _ router.Screen = (*ReviewScreen)(nil)
var _ router.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a new ReviewScreen.
func New(questions []*question.Question) *ReviewScreen {
	return &ReviewScreen{questions: questions}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Colour Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Space", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, components.DefaultKeys.Back):
		return s, router.Pop
	case key.Matches(kmsg, prevKey):
		if s.index > 0 {
			s.index--
			s.showAnswer = false
		}
	case key.Matches(kmsg, nextKey):
		if s.index < len(s.questions)-1 {
			s.index++
			s.showAnswer = false
		}
	case key.Matches(kmsg, answerKey):
		s.showAnswer = !s.showAnswer
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No colour-annotated questions in the bank.")
	}

	q := s.questions[s.index]
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s  ·  %d/%d", q.ID, s.index+1, len(s.questions))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	list := components.OptionList{Question: q, Cursor: -1, ShowColors: true}
	if s.showAnswer {
		list.Revealed = true
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list.View()))
	b.WriteString("\n")

	if s.showAnswer {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Success).
			Render("Answer: " + q.Answer))
	}
	return b.String()
}
