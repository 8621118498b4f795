package internal

import (
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <names-csv> <command> [args...]",
	Short: "Run a command under one or more rubies",
	Long: `Exec runs the command once per comma-separated name, each time with
that ruby's bin directory substituted into PATH for the invocation only.
Runs are sequential and a failing run does not stop the remaining ones, so
the same command can be compared across several rubies in one call.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExec,
}

func init() {
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	return app.activator.Exec(cmd.Context(), args[0], args[1], args[2:]...)
}
