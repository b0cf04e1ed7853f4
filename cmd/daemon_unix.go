//go:build unix

package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gurisko/jbp/internal/daemon"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run jbp as a query server for launchers",
	Long: `Control the jbp daemon. It answers launcher queries over a unix socket,
so a launcher host can show JetBrains projects without spawning jbp per keystroke.

Use 'jbp --daemon query ...' to send CLI requests through it.`,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon in the foreground",
	Long: `Start the jbp daemon in the foreground. It stops on SIGINT or SIGTERM.

For background operation, use:
  nohup jbp daemon start > /tmp/jbp-daemon.log 2>&1 &`,
	RunE: startDaemon,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running daemon",
	RunE:  stopDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the daemon is running",
	RunE:  statusDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.AddCommand(daemonStartCmd, daemonStopCmd, daemonStatusCmd)
}

func startDaemon(cmd *cobra.Command, args []string) error {
	// The daemon always logs; --verbose only matters for one-shot commands.
	log.SetOutput(os.Stderr)

	plugin, store, err := newPlugin()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	log.Printf("[INFO] Serving %d IDE(s), settings from %s", len(plugin.Variants()), store.Path())

	d := daemon.New(&daemon.Config{Plugin: plugin, Store: store})
	return d.Start()
}

func stopDaemon(cmd *cobra.Command, args []string) error {
	return daemon.New(daemon.DefaultConfig()).Stop()
}

func statusDaemon(cmd *cobra.Command, args []string) error {
	status := daemon.New(daemon.DefaultConfig()).GetStatus()

	switch {
	case status.Running:
		fmt.Printf("jbp daemon running (PID: %d)\n", status.PID)
		fmt.Printf("  Socket: %s\n", status.SocketPath)
		fmt.Printf("  Uptime: %s\n", status.Uptime.Round(time.Second))
	case status.PID > 0 && status.ErrorMessage != "":
		fmt.Printf("jbp daemon process exists (PID: %d) but is not responding\n", status.PID)
		fmt.Printf("  Socket: %s\n", status.SocketPath)
		fmt.Printf("  Error: %s\n", status.ErrorMessage)
	case status.PID > 0:
		fmt.Println("jbp daemon is not running (stale pidfile)")
		fmt.Printf("  Socket: %s\n", status.SocketPath)
	default:
		fmt.Println("jbp daemon is not running")
		fmt.Printf("  Socket: %s\n", status.SocketPath)
	}
	return nil
}
