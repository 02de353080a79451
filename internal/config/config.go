// Package config reads the console's environment configuration.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when the environment is silent or unparsable.
const (
	DefaultAPIURL  = "https://api.paydesk.app"
	DefaultTimeout = 10 * time.Second
)

// Config is everything the console reads from its environment. Behavior
// beyond this is not environment-driven.
type Config struct {
	APIURL   string        // PAYDESK_API_URL
	Timeout  time.Duration // PAYDESK_TIMEOUT (Go duration, e.g. "15s")
	LogLevel string        // PAYDESK_LOG_LEVEL
	Home     string        // token file and log file live here
}

// Load builds a Config from the environment. Parse failures fall back to
// defaults; configuration can degrade but never aborts startup.
func Load() Config {
	cfg := Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		LogLevel: os.Getenv("PAYDESK_LOG_LEVEL"),
	}
	if v := os.Getenv("PAYDESK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("PAYDESK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg.Home = filepath.Join(home, ".paydesk")
	return cfg
}

// TokenPath is where the bearer token is persisted.
func (c Config) TokenPath() string {
	return filepath.Join(c.Home, "token")
}

// LogPath is where the console writes its log file.
func (c Config) LogPath() string {
	return filepath.Join(c.Home, "paydesk.log")
}
