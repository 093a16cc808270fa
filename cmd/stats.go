package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery statistics for the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Close()

		lib := env.lib
		sum := lib.Summary()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				mastery.Summary
				Threshold int     `json:"threshold"`
				Eligible  int     `json:"eligible"`
				Accuracy  float64 `json:"accuracy"`
			}{sum, lib.Threshold(), sum.Eligible(), sum.Accuracy()})
		}

		fmt.Fprintf(out, "%d questions, threshold %d correct in a row\n", sum.Questions, lib.Threshold())
		fmt.Fprintf(out, "new %d   learning %d   mastered %d   eligible %d\n",
			sum.New, sum.Learning, sum.Mastered, sum.Eligible())
		fmt.Fprintf(out, "lifetime accuracy %.1f%% over %d attempts\n", sum.Accuracy()*100, sum.TotalAttempts)

		if verbose, _ := cmd.Flags().GetBool("questions"); !verbose {
			return nil
		}

		t := table.New().Headers("ID", "TYPE", "STATE", "STREAK", "ATTEMPTS", "CORRECT")
		for _, q := range lib.Bank().All() {
			t.Row(
				q.ID,
				string(q.Type),
				string(mastery.StateOf(q.Stats, lib.Threshold())),
				strconv.Itoa(q.Stats.ConsecutiveCorrect),
				strconv.Itoa(q.Stats.TotalAttempts),
				strconv.Itoa(q.Stats.CorrectAttempts),
			)
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the summary as JSON")
	statsCmd.Flags().BoolP("questions", "q", false, "List every question with its statistics")
}
