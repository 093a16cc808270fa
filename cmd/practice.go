package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/library"
	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/session"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

const practiceHelp = `Type the option letters and press Enter (e.g. "B" or "AC").
An empty line skips the question.
  :p       previous question
  :j N     jump to question N
  :o       overview
  :f       finish and record
  :q       quit without recording`

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a practice session in plain line mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Close()

		r := &practiceRunner{
			lib: env.lib,
			in:  bufio.NewReader(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		return r.run()
	},
}

type practiceRunner struct {
	lib *library.Library
	in  *bufio.Reader
	out io.Writer
	st  *session.State
}

func (r *practiceRunner) run() error {
	r.st = session.NewState()
	if err := r.lib.Start(r.st); err != nil {
		if errors.Is(err, session.ErrNoEligible) {
			fmt.Fprintln(r.out, "Nothing to practice: every question is mastered or the bank is empty.")
			return nil
		}
		return err
	}
	_, total := session.Progress(r.st)
	fmt.Fprintf(r.out, "Session started with %d questions. Type :h for help.\n", total)

	for r.st.Phase == session.PhaseInProgress {
		r.printQuestion()
		line, err := r.readLine("> ")
		if errors.Is(err, io.EOF) {
			_ = r.lib.Engine().Abandon(r.st)
			fmt.Fprintln(r.out, "\nInput closed; session discarded.")
			return nil
		}
		if err != nil {
			return err
		}
		if err := r.handle(line); err != nil {
			return err
		}
	}
	return nil
}

func (r *practiceRunner) handle(line string) error {
	eng := r.lib.Engine()

	switch {
	case line == ":h":
		fmt.Fprintln(r.out, practiceHelp)
	case line == ":q":
		if r.confirm("Quit without recording this session?") {
			_ = eng.Abandon(r.st)
			fmt.Fprintln(r.out, "Session discarded.")
		}
	case line == ":p":
		if err := eng.Previous(r.st); err != nil {
			fmt.Fprintln(r.out, err)
		}
	case strings.HasPrefix(line, ":j"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":j")))
		if err != nil {
			fmt.Fprintln(r.out, "usage: :j N")
			return nil
		}
		if err := eng.Jump(r.st, n-1); err != nil {
			fmt.Fprintln(r.out, err)
		}
	case line == ":o":
		r.printOverview()
	case line == ":f":
		return r.finalize()
	case strings.HasPrefix(line, ":"):
		fmt.Fprintln(r.out, "unknown command; type :h for help")
	default:
		labels, ok := parseLabels(line)
		if !ok {
			fmt.Fprintln(r.out, "enter option letters A-E, or :h for help")
			return nil
		}
		fb, err := eng.Submit(r.st, labels)
		if err != nil {
			return err
		}
		if fb != nil {
			r.printFeedback(fb)
		}
		return r.advance()
	}
	return nil
}

func (r *practiceRunner) advance() error {
	res, err := r.lib.Engine().Advance(r.st)
	if err != nil {
		return err
	}
	switch res.Kind {
	case session.AdvanceMoved:
		return nil
	case session.AdvanceFinalizeAfter:
		type outcome struct {
			entry *session.HistoryEntry
			err   error
		}
		done := make(chan outcome, 1)
		r.lib.ScheduleFinalize(r.st, res, session.ConfirmFunc(r.confirm), func(e *session.HistoryEntry, err error) {
			done <- outcome{e, err}
		})
		o := <-done
		return r.finalized(o.err)
	default:
		return r.finalize()
	}
}

func (r *practiceRunner) finalize() error {
	_, err := r.lib.Finalize(r.st, session.ConfirmFunc(r.confirm))
	return r.finalized(err)
}

func (r *practiceRunner) finalized(err error) error {
	switch {
	case errors.Is(err, session.ErrNoAnswers):
		fmt.Fprintln(r.out, "Answer at least one question before finishing.")
		return nil
	case errors.Is(err, session.ErrNotConfirmed):
		fmt.Fprintln(r.out, "Keep going.")
		return nil
	case err != nil:
		return err
	}
	r.printReport(r.st.Report)
	return nil
}

func (r *practiceRunner) confirm(prompt string) bool {
	line, err := r.readLine(prompt + " [y/N] ")
	if err != nil {
		return false
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes")
}

func (r *practiceRunner) readLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *practiceRunner) printQuestion() {
	q := session.Current(r.st)
	pos, total := session.Progress(r.st)

	fmt.Fprintf(r.out, "\n[%d/%d] %s (%s)\n%s\n", pos, total, q.ID, q.Type, q.Prompt)
	for _, o := range q.Options {
		fmt.Fprintf(r.out, "  %s) %s\n", o.Label, o.Text)
	}
	if q.Type == question.TypeMulti {
		fmt.Fprintln(r.out, "  (select all that apply)")
	}
}

func (r *practiceRunner) printFeedback(fb *session.Feedback) {
	if fb.IsCorrect {
		fmt.Fprintln(r.out, theme.Correct.Render("Correct!"))
		return
	}
	fmt.Fprintln(r.out, theme.Incorrect.Render("Not quite")+
		fmt.Sprintf(" - you answered %s, correct answer: %s", fb.Submitted, fb.Correct))
}

func (r *practiceRunner) printOverview() {
	for _, s := range session.Overview(r.st) {
		mark := "·"
		switch s.Status {
		case session.StatusCorrect:
			mark = "✓"
		case session.StatusIncorrect:
			mark = "✗"
		}
		fmt.Fprintf(r.out, "%3d. %s %s\n", s.Index+1, mark, s.QuestionID)
	}
}

func (r *practiceRunner) printReport(rep *session.Report) {
	fmt.Fprintf(r.out, "\nSession complete: %d answered, %d correct, %d incorrect, accuracy %s\n",
		rep.Score.Total, rep.Score.Correct, rep.Score.Incorrect, rep.Score.Accuracy)
	if len(rep.Wrong) > 0 {
		fmt.Fprintf(r.out, "Review: %s\n", strings.Join(rep.Wrong, ", "))
	}
}

// parseLabels reads option letters from line, ignoring spaces and commas.
// Any other character makes the line invalid.
func parseLabels(line string) ([]string, bool) {
	var labels []string
	for _, c := range strings.ToUpper(line) {
		switch {
		case c >= 'A' && c <= 'E':
			labels = append(labels, string(c))
		case c == ' ' || c == ',' || c == '，':
		default:
			return nil, false
		}
	}
	return labels, true
}
