package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gurisko/jbp/internal/ide"
)

var (
	idesJSON bool
	idesAll  bool
)

var idesCmd = &cobra.Command{
	Use:   "ides",
	Short: "List the JetBrains IDEs found on this machine",
	RunE:  runIDEs,
}

func init() {
	rootCmd.AddCommand(idesCmd)
	idesCmd.Flags().BoolVar(&idesJSON, "json", false, "output JSON")
	idesCmd.Flags().BoolVar(&idesAll, "all", false, "include supported IDEs that are not installed")
}

func runIDEs(cmd *cobra.Command, args []string) error {
	if idesAll {
		return printAllIDEs()
	}

	b, err := newBackend()
	if err != nil {
		return err
	}
	ides, err := b.IDEs(cmd.Context())
	if err != nil {
		return err
	}

	if idesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ides)
	}
	if len(ides) == 0 {
		fmt.Println("No JetBrains IDEs found on PATH")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXECUTABLE\tCONFIG DIR")
	for _, v := range ides {
		dir := v.ConfigDir
		if dir == "" {
			dir = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, v.Executable, dir)
	}
	return w.Flush()
}

type knownIDE struct {
	Name        string   `json:"name"`
	Installed   bool     `json:"installed"`
	Executable  string   `json:"executable,omitempty"`
	Executables []string `json:"candidates"`
}

func printAllIDEs() error {
	resolved := make(map[string]string)
	for _, v := range ide.Resolve(ide.Known, "", exec.LookPath) {
		resolved[v.Name()] = v.Executable()
	}

	all := make([]knownIDE, 0, len(ide.Known))
	for _, def := range ide.Known {
		exe, ok := resolved[def.Name]
		all = append(all, knownIDE{Name: def.Name, Installed: ok, Executable: exe, Executables: def.Executables})
	}

	if idesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINSTALLED\tEXECUTABLE")
	for _, k := range all {
		exe := k.Executable
		if exe == "" {
			exe = "-"
		}
		fmt.Fprintf(w, "%s\t%t\t%s\n", k.Name, k.Installed, exe)
	}
	return w.Flush()
}
