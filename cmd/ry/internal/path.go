package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var binpathCmd = &cobra.Command{
	Use:   "binpath <name>",
	Short: "Print the bin directory of an installed ruby",
	Args:  cobra.ExactArgs(1),
	RunE:  runBinpath,
}

var fullpathCmd = &cobra.Command{
	Use:   "fullpath [name]",
	Short: "Print the derived PATH exposing a ruby",
	Long: `Fullpath prints the search path that puts one ruby's bin directory
first, with every store-rooted entry from the ambient PATH filtered out.
With no name the current ruby is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFullpath,
}

func init() {
	rootCmd.AddCommand(binpathCmd)
	rootCmd.AddCommand(fullpathCmd)
}

func runBinpath(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	path, err := app.activator.BinPath(args[0])
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runFullpath(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	path, err := app.activator.FullPath(name)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
