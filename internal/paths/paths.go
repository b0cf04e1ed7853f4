package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// JetBrainsConfigRoot is the directory holding per-vendor IDE config
// directories (JetBrains/GoLand2024.3, Google/AndroidStudio2024.1, ...).
func JetBrainsConfigRoot() string {
	return configRootFor(runtime.GOOS, homeDir())
}

func configRootFor(goos, home string) string {
	if goos == "darwin" {
		return filepath.Join(home, "Library", "Application Support")
	}
	return filepath.Join(home, ".config")
}

func DefaultConfigDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "jbp")
	}
	return filepath.Join(homeDir(), ".config", "jbp")
}

func DefaultRuntimeDir() string {
	if x := os.Getenv("XDG_RUNTIME_DIR"); x != "" {
		return filepath.Join(x, "jbp")
	}
	return filepath.Join(homeDir(), ".jbp")
}

// IconsDir returns $JBP_ICONS_DIR, or the icons directory shipped next to
// the jbp binary.
func IconsDir() string {
	if x := os.Getenv("JBP_ICONS_DIR"); x != "" {
		return x
	}
	exe, err := os.Executable()
	if err != nil {
		return "icons"
	}
	return filepath.Join(filepath.Dir(exe), "icons")
}

func DefaultConfigPath() string { return filepath.Join(DefaultConfigDir(), "config.yaml") }
func DefaultSocketPath() string { return filepath.Join(DefaultRuntimeDir(), "daemon.sock") }
func DefaultPIDPath() string    { return filepath.Join(DefaultRuntimeDir(), "daemon.pid") }

func homeDir() string {
	home, _ := os.UserHomeDir()
	return home
}
