// Package config loads compy's settings. Values are layered, later sources
// winning: built-in defaults, the YAML config file, then COMPY_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
// COMPY_LOG_LEVEL sets log.level, COMPY_LOG_TO_FILE sets log.to_file.
const EnvPrefix = "COMPY_"

// Config holds all compy settings.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	SysDB  SysDBConfig  `koanf:"sysdb"`
	Output OutputConfig `koanf:"output"`
}

// LogConfig controls diagnostics. Logs never go to stdout, which carries
// the candidates.
type LogConfig struct {
	Level  string `koanf:"level"`
	ToFile bool   `koanf:"to_file"`
	// File overrides the default log file location.
	File string `koanf:"file"`
}

// SysDBConfig locates the system databases.
type SysDBConfig struct {
	// Root is the directory holding etc/group, etc/passwd, etc/hosts and
	// etc/services.
	Root string `koanf:"root"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	Quote bool `koanf:"quote"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log.level":    "warn",
		"log.to_file":  false,
		"log.file":     "",
		"sysdb.root":   "/",
		"output.quote": false,
	}
}

// Load builds the configuration. A missing config file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yamlParser{}); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps COMPY_SECTION_KEY_NAME to section.key_name.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
