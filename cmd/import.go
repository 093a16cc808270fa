package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the question bank with a delimited text file or spreadsheet",
	Long: "Import parses FILE and replaces the question bank. Files ending in .xlsx are read\n" +
		"as spreadsheets; anything else is read as comma-delimited text in the configured\n" +
		"encoding (GBK by default). Statistics of questions that keep their id carry over.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.lib.ImportFile(cmd.Context(), args[0])
		if err != nil {
			var ierr *ingest.Error
			if errors.As(err, &ierr) && ierr.Kind == ingest.KindEmpty {
				return fmt.Errorf("%s contains no questions", args[0])
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions from %s (%s); %d eligible at threshold %d.\n",
			res.Count, args[0], res.Source, res.Eligible, env.lib.Threshold())
		return nil
	},
}

func init() {
	importCmd.Flags().String("encoding", "", "Text encoding of delimited files (overrides QUIZDRILL_ENCODING)")
}
