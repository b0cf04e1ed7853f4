package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gurisko/jbp/internal/paths"
)

var (
	verbose    bool
	configPath string
	viaDaemon  bool
)

var rootCmd = &cobra.Command{
	Use:   "jbp",
	Short: "jbp - open recent JetBrains projects",
	Long: `jbp finds the JetBrains IDEs installed on this machine, reads their recent
projects and opens the one you pick in the IDE that last had it open.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log discovery and parsing details to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", paths.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&viaDaemon, "daemon", false, "send the request to a running jbp daemon")
}

func Execute() error {
	// Silence usage and errors to avoid cluttering output with Cobra defaults
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}
