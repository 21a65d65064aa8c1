// Package config loads process configuration from ENGAGE_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds everything tunable from the environment. Paths left empty
// fall back to the XDG defaults resolved by the store and logging setup.
type Config struct {
	// DBPath overrides the SQLite database location.
	DBPath string `env:"ENGAGE_DB"`

	// LogPath overrides the log file location. The TUI owns stdout and
	// stderr, so logs always go to a file.
	LogPath string `env:"ENGAGE_LOG"`

	// SnapshotKeep is how many historical snapshots pruning retains.
	SnapshotKeep int `env:"ENGAGE_SNAPSHOT_KEEP" envDefault:"20"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DefaultLogPath resolves the log file path:
// 1. ENGAGE_LOG environment variable (via Config.LogPath)
// 2. $XDG_STATE_HOME/engage/engage.log
// 3. ~/.local/state/engage/engage.log
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	p := filepath.Join(stateHome, "engage", "engage.log")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return p, nil
}
