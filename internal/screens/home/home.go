package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/library"
	"github.com/abhisek/quizdrill/internal/mastery"
	"github.com/abhisek/quizdrill/internal/router"
	"github.com/abhisek/quizdrill/internal/screens/history"
	"github.com/abhisek/quizdrill/internal/screens/review"
	sessionscreen "github.com/abhisek/quizdrill/internal/screens/session"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// HomeScreen is the main menu with a mastery overview of the bank.
type HomeScreen struct {
	lib     *library.Library
	menu    components.Menu
	summary mastery.Summary
}

var _ router.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(lib *library.Library) *HomeScreen {
	h := &HomeScreen{lib: lib}
	h.refresh()
	return h
}

// Init recomputes the summary; it runs again whenever a screen above is
// popped.
func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	lib := h.lib
	h.summary = lib.Summary()
	colored := len(lib.ColoredReview())

	items := []components.MenuItem{
		{
			Label:    "Practice",
			Detail:   fmt.Sprintf("%d due", h.summary.Eligible()),
			Disabled: h.summary.Eligible() == 0,
			Action:   func() tea.Cmd { return router.Push(sessionscreen.New(lib)) },
		},
		{
			Label:    "Colour review",
			Detail:   fmt.Sprintf("%d annotated", colored),
			Disabled: colored == 0,
			Action:   func() tea.Cmd { return router.Push(review.New(lib.ColoredReview())) },
		},
		{
			Label:  "History",
			Action: func() tea.Cmd { return router.Push(history.New(lib)) },
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 64)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("quizdrill"))
	sections = append(sections, h.renderStats(cw))

	if h.summary.Questions == 0 {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).
			Render("The bank is empty. Run `quizdrill import FILE` to load questions."))
	}

	sections = append(sections, theme.Card.Width(cw).Render(h.menu.View()))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStats(cw int) string {
	s := h.summary
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := fmt.Sprintf("%s %d   %s %d   %s %d   %s %d",
		dim.Render("questions"), s.Questions,
		dim.Render("new"), s.New,
		dim.Render("learning"), s.Learning,
		lipgloss.NewStyle().Foreground(theme.Success).Render("mastered"), s.Mastered)

	bar := components.NewProgressBar("Mastery", s.Mastered, s.Questions, cw-4).View()

	acc := dim.Render(fmt.Sprintf("lifetime accuracy %.0f%%   threshold %d in a row",
		s.Accuracy()*100, h.lib.Threshold()))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(cw).
		Render(line + "\n" + bar + "\n" + acc)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
