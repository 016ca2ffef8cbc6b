package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modlink/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for modlink
	EnvConfigDir = "MODLINK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for modlink
	EnvStateDir = "MODLINK_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for modlink-specific files
	AppDirName = "modlink"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// ModuleConfigFile is the name of the per-module configuration file
	ModuleConfigFile = ".modlink.toml"

	// LogFile is the name of the log file inside the state directory
	LogFile = "modlink.log"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// UserConfigPath returns the path of the user configuration file
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// LogFilePath returns the path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFile)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}

// Normalize expands the home directory and returns a clean absolute path
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}

// IsWithin reports whether path lies inside root. Both must be absolute.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
