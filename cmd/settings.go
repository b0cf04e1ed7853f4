package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the launcher integration descriptor as JSON",
	Long: `Print what a launcher host needs to integrate jbp: the query trigger,
whether fuzzy matching is supported and the settings widgets to render.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plugin, _, err := newPlugin()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"trigger":         plugin.DefaultTrigger(),
			"fuzzy_supported": plugin.SupportsFuzzyMatching(),
			"widgets":         plugin.ConfigWidget(),
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
