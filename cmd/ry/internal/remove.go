package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm"},
	Short:   "Remove installed rubies",
	Long: `Remove deletes each named installation from the store. Removing a
name that is not installed is a no-op. Removing the current ruby leaves the
activation pointer dangling until the next "ry use".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	current, hasCurrent := app.store.CurrentName()

	for _, name := range args {
		if hasCurrent && name == current {
			app.logger.Warn("removing the current ruby; no ruby will be active", "ruby", name)
		}
		if err := app.store.Remove(name); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", name)
	}
	return nil
}
