package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for barkeep
	EnvConfigDir = "BARKEEP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for barkeep
	EnvStateDir = "BARKEEP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under every XDG base directory
	AppDirName = "barkeep"

	// ConfigFileName is the configuration file looked up in the config dir
	ConfigFileName = "config.yaml"

	// StylesFileName is the stylesheet written next to the configuration
	StylesFileName = "styles.css"

	// LogFileName is the name of the log file
	LogFileName = "barkeep.log"
)

// ConfigDir returns the directory holding config.yaml and styles.css.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFile returns the default configuration file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StylesFile returns the default stylesheet path.
func StylesFile() string {
	return filepath.Join(ConfigDir(), StylesFileName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the user's home directory.
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
