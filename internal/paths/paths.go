// Package paths resolves the configuration and data directory
// locations used by the command-line pipeline.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".wick"
	DefaultDataDirName   = ".wick-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WICK_CONFIG_DIR"
	EnvDataDir   = "WICK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be
// overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/wick (fallback ~/.config/wick)
// macOS:   ~/Library/Application Support/wick
// Windows: %APPDATA%/wick
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wick"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "wick"), nil
	default:
		// macOS and Windows go through os.UserConfigDir, which returns
		// ~/Library/Application Support and %APPDATA% respectively.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "wick"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > WICK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config file value > WICK_DATA_DIR env > CWD default.
//
// The CWD-relative default ($(CWD)/.wick-db) keeps each working tree's
// run history next to it when nothing else is configured.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// Ensure creates the directory if it does not exist yet.
func Ensure(dir string) error {
	return os.MkdirAll(dir, 0755)
}
