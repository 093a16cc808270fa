package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold [N]",
	Short: "Show or set how many correct answers in a row master a question",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, env.lib.Threshold())
			return nil
		}

		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("threshold must be a whole number: %w", err)
		}
		if err := env.lib.SetThreshold(cmd.Context(), n); err != nil {
			return err
		}
		fmt.Fprintf(out, "Threshold set to %d; %d questions eligible.\n", n, env.lib.EligibleCount())
		return nil
	},
}
