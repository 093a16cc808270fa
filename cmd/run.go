package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/app"
)

// runApp opens the library and launches the TUI. Logs go to
// QUIZDRILL_LOG_FILE when set and are discarded otherwise.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(env.lib)
}
