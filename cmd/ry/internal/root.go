// Package internal contains the ry CLI commands.
package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zhm/ry/internal/activate"
	"github.com/zhm/ry/internal/buildsys"
	"github.com/zhm/ry/internal/config"
	"github.com/zhm/ry/internal/fetch"
	"github.com/zhm/ry/internal/store"
	"github.com/zhm/ry/internal/tool"
)

// Version is the release version (set via -ldflags).
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ry",
	Short: "ry manages multiple ruby installations",
	Long: `ry installs, builds, switches between, and removes isolated ruby
installations, exposing one as current through an activation pointer.

With no arguments ry lists the installed rubies; with a single installed
name it activates that ruby, so "ry 1.9.3" is shorthand for "ry use 1.9.3".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// app wires the components every command needs. Commands construct it in
// their RunE so the store root reflects the environment at call time.
type app struct {
	cfg        *config.Config
	logger     *log.Logger
	store      *store.Store
	runner     tool.Runner
	fetcher    *fetch.Adapter
	dispatcher *buildsys.Dispatcher
	activator  *activate.Manager
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	st := store.New(cfg.Root)
	runner := tool.NewRunner(logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		runner:     runner,
		fetcher:    fetch.New(runner, logger, cfg.Downloader),
		dispatcher: buildsys.NewDispatcher(runner, logger),
		activator:  activate.NewManager(st, runner, logger),
	}, nil
}

// runRoot handles the bare invocations: no args lists, one arg activates.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runList(cmd, args)
	}
	return runUse(cmd, args)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}

// printEnvHints reports recommended environment overrides from a build.
// Nothing is applied to the process; the user decides.
func printEnvHints(env map[string]string) {
	for key, val := range env {
		fmt.Printf("export %s=%s\n", key, val)
	}
}
