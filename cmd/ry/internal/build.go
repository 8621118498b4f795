package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhm/ry/internal/buildsys"
)

var buildCmd = &cobra.Command{
	Use:   "build <name> [extra build args...]",
	Short: "Rebuild an installed ruby from its source workspace",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	name, extraArgs := args[0], args[1:]

	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.store.AssertInstalled(name); err != nil {
		return err
	}

	result, err := app.dispatcher.Build(cmd.Context(), buildsys.Spec{
		SourceDir:   app.store.SourceDir(name),
		Prefix:      app.store.InstallDir(name),
		ExtraArgs:   extraArgs,
		CurrentPath: app.store.CurrentPath(),
	})
	if err != nil {
		return err
	}
	printEnvHints(result.Env)
	fmt.Printf("built %s with %s\n", name, result.System)
	return nil
}
