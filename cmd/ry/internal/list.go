package internal

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var currentMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List installed rubies",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var rubiesCmd = &cobra.Command{
	Use:   "rubies",
	Short: "List installed rubies, marking the current one",
	Args:  cobra.NoArgs,
	RunE:  runRubies,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(rubiesCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	names, err := app.store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runRubies(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	names, err := app.store.List()
	if err != nil {
		return err
	}
	current, hasCurrent := app.store.CurrentName()

	for _, name := range names {
		if hasCurrent && name == current {
			fmt.Println(currentMarkerStyle.Render("* " + name))
			continue
		}
		fmt.Println("  " + name)
	}
	return nil
}
