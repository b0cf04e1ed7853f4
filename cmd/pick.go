package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gurisko/jbp/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick [words...]",
	Short: "Interactively pick a project to open",
	Long: `Show an interactive list of recent projects. Type to filter, move with the
arrow keys and press enter to open the selection in its IDE.`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	plugin, _, err := newPlugin()
	if err != nil {
		return err
	}

	opened, err := tui.Run(plugin, queryFromArgs(args))
	if err != nil {
		return err
	}
	if opened != nil {
		fmt.Printf("Opening %s in %s\n", opened.Text, opened.Project.IDE.Name())
	}
	return nil
}
