// Package paths provides centralized path handling for wrapperize.
//
// It derives the paths of a wrap operation from the binary being wrapped
// (Resolve) and locates the XDG directories used for the user configuration
// file and the log file.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile overrides the configuration file location
	EnvConfigFile = "WRAPPERIZE_CONFIG"

	// EnvStateDir overrides the state directory (log file location)
	EnvStateDir = "WRAPPERIZE_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name used below the XDG base directories
	AppDirName = "wrapperize"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "wrapperize.log"
)

// ConfigDir returns the directory holding the user configuration file.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the user configuration file path, honouring
// WRAPPERIZE_CONFIG.
func ConfigFilePath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory for runtime state such as the log file,
// honouring WRAPPERIZE_STATE_DIR.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}
