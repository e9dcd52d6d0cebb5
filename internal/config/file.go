package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/bashhack/autopush/internal/errors"
)

// fileConfig mirrors the TOML config file layout. Pointer fields distinguish
// "not set" from zero values so the file only overrides what it names.
type fileConfig struct {
	RepoPath        *string    `toml:"repo_path"`
	Remote          *string    `toml:"remote"`
	Branch          *string    `toml:"branch"`
	CommitPrefix    *string    `toml:"commit_prefix"`
	IntervalMinutes *int       `toml:"interval_minutes"`
	MaxRetries      *int       `toml:"max_retries"`
	Debug           *bool      `toml:"debug"`
	LogFile         *string    `toml:"log_file"`
	Verbose         *bool      `toml:"verbose"`
	Notify          fileNotify `toml:"notify"`
}

// fileNotify is the [notify] section of the config file.
type fileNotify struct {
	Enabled    *bool   `toml:"enabled"`
	DurationMs *int    `toml:"duration_ms"`
	NtfyTopic  *string `toml:"ntfy_topic"`
}

// DefaultFilePath returns the default config file location, following the
// XDG Base Directory Specification. The AUTOPUSH_CONFIG environment
// variable overrides it.
func DefaultFilePath() string {
	if path := os.Getenv("AUTOPUSH_CONFIG"); path != "" {
		return path
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "autopush", "config.toml")
}

// LoadFromFile applies settings from the TOML file at path on top of the
// current values. A missing file is not an error; a malformed one is.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.NewConfigError("config-file", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to read config file: %v", err)))
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return errors.NewConfigError("config-file", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse config file: %v", err)))
	}

	fc.apply(c)
	return nil
}

// apply copies the file's explicitly set values onto cfg.
func (fc *fileConfig) apply(cfg *Config) {
	if fc.RepoPath != nil {
		cfg.RepoPath = *fc.RepoPath
	}
	if fc.Remote != nil {
		cfg.Remote = *fc.Remote
	}
	if fc.Branch != nil {
		cfg.Branch = *fc.Branch
	}
	if fc.CommitPrefix != nil {
		cfg.CommitPrefix = *fc.CommitPrefix
	}
	if fc.IntervalMinutes != nil {
		cfg.IntervalMinutes = *fc.IntervalMinutes
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Notify.Enabled != nil {
		cfg.NotifyEnabled = *fc.Notify.Enabled
	}
	if fc.Notify.DurationMs != nil {
		cfg.NotifyDurationMs = *fc.Notify.DurationMs
	}
	if fc.Notify.NtfyTopic != nil {
		cfg.NtfyTopic = *fc.Notify.NtfyTopic
	}
}
