package components

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// OptionList renders the labelled options of one question.
type OptionList struct {
	Question *question.Question
	Cursor   int

	// Pending is the unsubmitted selection.
	Pending []string

	// Revealed colours the correct options green and the wrong picks red.
	Revealed  bool
	Submitted []string

	// ShowColors renders spreadsheet fill colours.
	ShowColors bool
}

// View renders the option list.
func (o OptionList) View() string {
	q := o.Question
	if q == nil {
		return ""
	}

	correct := q.AnswerLabels()
	var b strings.Builder
	for i, opt := range q.Options {
		prefix := "  "
		if i == o.Cursor && !o.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, o.marker(opt.Label), opt.Label, opt.Text)

		style := theme.Unselected
		switch {
		case o.Revealed && slices.Contains(correct, opt.Label):
			style = theme.Correct
		case o.Revealed && slices.Contains(o.Submitted, opt.Label):
			style = theme.Incorrect
		case o.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case o.ShowColors && opt.Color != "":
			style = theme.OptionColor(opt.Color)
		case i == o.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (o OptionList) marker(label string) string {
	picked := slices.Contains(o.Pending, label)
	if o.Revealed {
		picked = slices.Contains(o.Submitted, label)
	}
	if o.Question.Type == question.TypeMulti {
		if picked {
			return "[x]"
		}
		return "[ ]"
	}
	if picked {
		return "(•)"
	}
	return "( )"
}
