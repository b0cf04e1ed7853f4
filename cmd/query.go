package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	queryJSON   bool
	queryBranch bool
	queryLimit  int
	queryFuzzy  bool
)

var queryCmd = &cobra.Command{
	Use:     "query [words...]",
	Aliases: []string{"q", "search"},
	Short:   "List recent projects matching a query",
	Long: `List recent JetBrains projects whose name matches the query, most recently
opened first. With match_path enabled the project path is matched too.

Examples:
  jbp query                 # Everything, newest first
  jbp query api             # Projects whose name contains "api"
  jbp query jb api          # Same; the launcher trigger "jb " is ignored
  jbp query --branch        # Show the checked out git branch
  jbp query --json | jq -r '.[0].subtext'`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output JSON")
	queryCmd.Flags().BoolVar(&queryBranch, "branch", false, "show the git branch of each project")
	queryCmd.Flags().BoolVar(&queryFuzzy, "fuzzy", false, "override the fuzzy setting for this query")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "show at most n results (0 = all)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	b, err := queryBackend(cmd)
	if err != nil {
		return err
	}

	items, err := b.Items(cmd.Context(), queryFromArgs(args), queryBranch)
	if err != nil {
		return err
	}
	if queryLimit > 0 && len(items) > queryLimit {
		items = items[:queryLimit]
	}

	if queryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No matching projects")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if queryBranch {
		fmt.Fprintln(w, "#\tNAME\tIDE\tOPENED\tBRANCH\tPATH")
	} else {
		fmt.Fprintln(w, "#\tNAME\tIDE\tOPENED\tPATH")
	}
	for i, it := range items {
		opened := formatOpened(it.LastOpened)
		if queryBranch {
			branch := it.Branch
			if branch == "" {
				branch = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i, it.Text, it.IDE, opened, branch, it.Subtext)
		} else {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, it.Text, it.IDE, opened, it.Subtext)
		}
	}
	return w.Flush()
}

// queryBackend honours --fuzzy, which only a local plugin can apply.
func queryBackend(cmd *cobra.Command) (backend, error) {
	if !cmd.Flags().Changed("fuzzy") {
		return newBackend()
	}
	if viaDaemon {
		return nil, errors.New("--fuzzy cannot be combined with --daemon; use 'jbp config set fuzzy'")
	}
	plugin, store, err := newPlugin()
	if err != nil {
		return nil, err
	}
	plugin.SetFuzzyMatching(queryFuzzy)
	return &localBackend{plugin: plugin, store: store}, nil
}

// formatOpened renders a JetBrains open timestamp (Unix milliseconds).
func formatOpened(ts int64) string {
	if ts <= 0 {
		return "-"
	}
	return time.UnixMilli(ts).Local().Format("2006-01-02 15:04")
}
