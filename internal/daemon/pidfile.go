//go:build unix

package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// pidFile records the PID of the running daemon.
type pidFile string

// acquire writes the current PID, replacing a stale file left by a dead process.
func (p pidFile) acquire() error {
	if err := ensureParentDir(string(p)); err != nil {
		return fmt.Errorf("failed to create PID file directory: %w", err)
	}

	for {
		f, err := os.OpenFile(string(p), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			cerr := f.Close()
			if werr != nil {
				return werr
			}
			return cerr
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create PID file: %w", err)
		}
		if pid, rerr := p.read(); rerr == nil && processAlive(pid) {
			return fmt.Errorf("daemon already running (PID: %d)", pid)
		}
		if err := os.Remove(string(p)); err != nil {
			return fmt.Errorf("stale pidfile exists and cannot remove: %w", err)
		}
	}
}

func (p pidFile) read() (int, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (p pidFile) release() { _ = os.Remove(string(p)) }

// processAlive sends signal 0 to pid.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// ensureParentDir creates the parent of path, owner-only.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	_ = os.Chmod(dir, 0o700)
	return nil
}

// removeSocketIfExists removes path only if it is a socket.
func removeSocketIfExists(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("refusing to remove non-socket path: %s", path)
	}
	return os.Remove(path)
}
