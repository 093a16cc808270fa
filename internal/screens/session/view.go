package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/question"
	sess "github.com/abhisek/quizdrill/internal/session"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// renderQuestionView renders the current question, its options and any
// feedback for the last submission.
func (s *SessionScreen) renderQuestionView(width int) string {
	st := s.state
	q := sess.Current(st)
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	pos, total := sess.Progress(st)
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s  ·  %s", q.ID, q.Type))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			st.Session.Correct,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			st.Session.Incorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString("  " + components.NewProgressBar("Q", pos, total, min(width-8, 60)).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	list := components.OptionList{
		Question: q,
		Cursor:   s.cursor,
		Pending:  st.Pending,
	}
	if fb := st.Feedback; fb != nil {
		list.Revealed = true
		list.Submitted = strings.Split(fb.Submitted, "")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list.View()))
	b.WriteString("\n")

	switch {
	case st.Feedback != nil:
		b.WriteString(renderFeedback(width, st.Feedback, s.grace))
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(selectHint(q.Type == question.TypeMulti)))
	}

	return b.String()
}

func selectHint(multi bool) string {
	if multi {
		return "Pick every correct option, then Enter. Enter with nothing picked skips."
	}
	return "Pick one option, then Enter. Enter with nothing picked skips."
}

func renderFeedback(width int, fb *sess.Feedback, grace bool) string {
	var b strings.Builder
	if fb.IsCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("You answered %s, correct answer: %s", fb.Submitted, fb.Correct)))
	}
	b.WriteString("\n\n")

	next := "Press Enter for the next question..."
	if grace {
		next = "That was the last question."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(next))
	return b.String()
}

// renderOverview renders the per-question status list.
func (s *SessionScreen) renderOverview(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session overview"))
	b.WriteString("\n\n")

	var lines strings.Builder
	for _, qs := range sess.Overview(s.state) {
		mark, style := "·", lipgloss.NewStyle().Foreground(theme.TextDim)
		switch qs.Status {
		case sess.StatusCorrect:
			mark, style = "✓", theme.Correct
		case sess.StatusIncorrect:
			mark, style = "✗", theme.Incorrect
		}
		prefix := "  "
		if qs.Index == s.ovCursor {
			prefix = "▸ "
		}
		current := ""
		if qs.Index == s.state.Session.Pointer {
			current = "  (current)"
		}
		lines.WriteString(style.Render(fmt.Sprintf("%s%3d. %s %s%s", prefix, qs.Index+1, mark, qs.QuestionID, current)))
		lines.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lines.String()))
	return b.String()
}

// renderFinishConfirm renders the finish confirmation dialog.
func (s *SessionScreen) renderFinishConfirm(width int) string {
	rep := sess.BuildReport(s.state.Session)

	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(sess.FinalizePrompt))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered, %d correct (%s)", rep.Score.Total, rep.Score.Correct, rep.Score.Accuracy)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, finish"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Quit this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answers will not be recorded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, discard"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your session...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
