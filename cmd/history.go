package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := env.lib.History(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No finished sessions yet.")
			return nil
		}

		t := table.New().Headers("STARTED", "DURATION", "ANSWERED", "CORRECT", "INCORRECT", "ACCURACY")
		for _, e := range entries {
			d := e.EndedAt.Sub(e.StartedAt)
			t.Row(
				e.StartedAt.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60),
				strconv.Itoa(e.Score.Total),
				strconv.Itoa(e.Score.Correct),
				strconv.Itoa(e.Score.Incorrect),
				e.Score.Accuracy,
			)
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of sessions to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print entries as JSON")
}
