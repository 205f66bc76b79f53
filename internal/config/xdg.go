package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under every XDG base directory
const AppName = "wacollect"

// ConfigDir returns the XDG-compliant config directory for wacollect
// Typically ~/.config/wacollect/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// DataDir returns the XDG-compliant data directory for wacollect
// Typically ~/.local/share/wacollect/ on Linux
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// WorkspaceDir is the workspace used when neither the command line nor
// the config file names one.
func WorkspaceDir() string {
	return filepath.Join(DataDir(), "workspace")
}
