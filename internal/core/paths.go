package core

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the directories compy keeps its files in.
const AppName = "compy"

type Paths struct {
	ConfigFile string
	LogFile    string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		configDir := filepath.Join(xdg.ConfigHome, AppName)
		stateDir := filepath.Join(xdg.StateHome, AppName)

		defaultPaths = &Paths{
			ConfigFile: filepath.Join(configDir, "config.yaml"),
			LogFile:    filepath.Join(stateDir, "compy.log"),
		}
	}
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
