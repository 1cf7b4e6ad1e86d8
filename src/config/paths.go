package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultDatabasePath returns the session database location under
// XDG_STATE_HOME.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, "voyagent", "sessions.db")
}

// GetDefaultCachePath returns the default cache directory path
func GetDefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "voyagent")
}

// GetConfigPaths returns the configuration file layers to merge.
func GetConfigPaths() ConfigPrecedence {
	return ConfigPrecedence{
		UserConfig:        filepath.Join(xdg.ConfigHome, "voyagent", "config.json"),
		ProjectConfig:     filepath.Join(".voyagent", "config.json"),
		LocalConfig:       filepath.Join(".voyagent", "config.local.json"),
		EnvironmentPrefix: "VOYAGENT",
	}
}
