package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhm/ry/internal/buildsys"
	"github.com/zhm/ry/internal/fetch"
)

var installCmd = &cobra.Command{
	Use:   "install <source> <name> [extra build args...]",
	Short: "Fetch, build, and activate a ruby",
	Long: `Install fetches a ruby source distribution and builds it under the
store. The source is either a direct tarball URL or the name of a recipe
known to an external installer (ruby-build), which then performs the whole
install on its own. On success the new ruby becomes current.

A failed build is not rolled back; remove the name and install again.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	return installRuby(cmd.Context(), app, args[0], args[1], args[2:])
}

// installRuby fetches and builds source into the store under name, then
// makes it current.
func installRuby(ctx context.Context, app *app, source, name string, extraArgs []string) error {
	if err := app.store.EnsureLayout(); err != nil {
		return err
	}
	if err := app.store.CreateInstallDir(name); err != nil {
		return err
	}

	if fetch.IsURL(source) {
		if err := app.fetcher.Fetch(ctx, source, app.store.SourceDir(name)); err != nil {
			return err
		}
		result, err := app.dispatcher.Build(ctx, buildsys.Spec{
			SourceDir:   app.store.SourceDir(name),
			Prefix:      app.store.InstallDir(name),
			ExtraArgs:   extraArgs,
			CurrentPath: app.store.CurrentPath(),
		})
		if err != nil {
			return err
		}
		printEnvHints(result.Env)
	} else {
		if !app.fetcher.HasRecipeInstaller() {
			return fetch.NoRecipeInstallerError(source)
		}
		if err := app.fetcher.RecipeInstall(ctx, source, app.store.InstallDir(name)); err != nil {
			return err
		}
	}

	current, err := app.activator.Use(name)
	if err != nil {
		return err
	}
	fmt.Printf("installed %s, now current\n", current)
	return nil
}
