package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	openIndex int
	openID    string
)

var openCmd = &cobra.Command{
	Use:   "open [words...]",
	Short: "Open a recent project in its IDE",
	Long: `Open the best match for the query (the most recently opened one) in the IDE
that recorded it. The IDE is started detached; jbp does not wait for it.

Examples:
  jbp open api              # Most recent project named like "api"
  jbp open api --index 1    # Second result of 'jbp query api'
  jbp open --id 'goland-/home/me/src/api-1700000000000'`,
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().IntVarP(&openIndex, "index", "i", 0, "result index as shown by 'jbp query'")
	openCmd.Flags().StringVar(&openID, "id", "", "open the result with this id")
}

func runOpen(cmd *cobra.Command, args []string) error {
	b, err := newBackend()
	if err != nil {
		return err
	}
	query := queryFromArgs(args)

	items, err := b.Items(cmd.Context(), query, false)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no project matches %q", query)
	}

	id := openID
	label := openID
	if id == "" {
		if openIndex < 0 || openIndex >= len(items) {
			return fmt.Errorf("index %d out of range (%d results)", openIndex, len(items))
		}
		it := items[openIndex]
		id = it.ID
		label = fmt.Sprintf("%s in %s", it.Text, it.IDE)
	}
	if id == "" {
		return errors.New("nothing to open")
	}

	if err := b.Open(cmd.Context(), query, id); err != nil {
		return err
	}
	fmt.Printf("Opening %s\n", label)
	return nil
}
