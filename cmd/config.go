package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gurisko/jbp/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change jbp settings",
	Long: `Show or change jbp settings.

Keys:
  match_path   also match the query against project paths (default false)
  fuzzy        allow fuzzy (subsequence) matches (default false)

Examples:
  jbp config get
  jbp config set match_path true`,
}

var configGetCmd = &cobra.Command{
	Use:       "get [key]",
	Short:     "Print settings",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBackend()
		if err != nil {
			return err
		}
		s, err := b.Settings(cmd.Context())
		if err != nil {
			return err
		}
		values := map[string]bool{config.KeyMatchPath: s.MatchPath, config.KeyFuzzy: s.Fuzzy}

		if len(args) == 1 {
			v, ok := values[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s", config.ErrUnknownKey, args[0])
			}
			fmt.Println(v)
			return nil
		}
		for _, k := range config.Keys() {
			fmt.Printf("%s = %t\n", k, values[k])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change a setting and save it",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("%w: %s=%q", config.ErrInvalidValue, key, args[1])
		}

		b, err := newBackend()
		if err != nil {
			return err
		}
		if _, err := b.SetBool(cmd.Context(), key, value); err != nil {
			return err
		}
		fmt.Printf("%s = %t\n", key, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
