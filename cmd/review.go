package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/ui/theme"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Print spreadsheet questions whose options carry fill colours",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		qs := env.lib.ColoredReview()
		if len(qs) == 0 {
			fmt.Fprintln(out, "No colour-annotated questions in the bank.")
			return nil
		}

		for _, q := range qs {
			lipgloss.Fprintln(out, theme.Selected.Render(q.ID)+"  "+q.Prompt)
			for _, o := range q.Options {
				line := fmt.Sprintf("  %s) %s", o.Label, o.Text)
				if o.Color != "" {
					line += "  " + o.Color
				}
				lipgloss.Fprintln(out, theme.OptionColor(o.Color).Render(line))
			}
			fmt.Fprintf(out, "  answer: %s\n\n", q.Answer)
		}
		return nil
	},
}
