package config

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bashhack/autopush/internal/errors"
)

const (
	// DefaultRemote is the remote pushed to after each backup commit
	DefaultRemote = "origin"

	// DefaultCommitPrefix for commit messages; the full message is
	// "<prefix>: <timestamp>"
	DefaultCommitPrefix = "Automated backup"

	// DefaultNotifyDurationMs is how long the desktop notification stays
	// visible, in milliseconds
	DefaultNotifyDurationMs = 8000

	// DefaultMaxRetries bounds consecutive failing cycles in interval mode
	DefaultMaxRetries = 3
)

// Config holds all autopush application settings
type Config struct {
	// Repository configuration
	RepoPath     string
	Remote       string
	Branch       string
	CommitPrefix string

	// IntervalMinutes selects the run mode: 0 performs a single
	// notify-stage-commit-push pass and exits, anything greater keeps
	// running and repeats the pass on that interval.
	IntervalMinutes int

	// MaxRetries defines how many consecutive failing cycles are allowed
	// in interval mode before exiting. Zero retries indefinitely.
	MaxRetries int

	// Notification settings
	NotifyEnabled    bool
	NotifyDurationMs int
	NtfyTopic        string

	// User experience
	Verbose bool

	// Debugging
	Debug   bool
	LogFile string

	// Special flags
	Version  bool
	ShowLogo bool // Shows ASCII logo and exits

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		RepoPath:         "",
		Remote:           DefaultRemote,
		Branch:           "",
		CommitPrefix:     DefaultCommitPrefix,
		IntervalMinutes:  0,
		MaxRetries:       DefaultMaxRetries,
		NotifyEnabled:    true,
		NotifyDurationMs: DefaultNotifyDurationMs,
		NtfyTopic:        "",
		Verbose:          true,
		Debug:            false,
		LogFile:          "",
		Version:          false,
		ShowLogo:         false,

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadFromEnvironment updates config from environment variables
func (c *Config) LoadFromEnvironment() {
	c.RepoPath = getEnvString("AUTOPUSH_REPO_PATH", c.RepoPath)
	c.Remote = getEnvString("AUTOPUSH_REMOTE", c.Remote)
	c.Branch = getEnvString("AUTOPUSH_BRANCH", c.Branch)
	c.CommitPrefix = getEnvString("AUTOPUSH_COMMIT_PREFIX", c.CommitPrefix)
	c.IntervalMinutes = getEnvInt("AUTOPUSH_INTERVAL_MINUTES", c.IntervalMinutes)
	c.MaxRetries = getEnvInt("AUTOPUSH_MAX_RETRIES", c.MaxRetries)
	c.NotifyEnabled = getEnvBool("AUTOPUSH_NOTIFY", c.NotifyEnabled)
	c.NotifyDurationMs = getEnvInt("AUTOPUSH_NOTIFY_DURATION_MS", c.NotifyDurationMs)
	c.NtfyTopic = getEnvString("AUTOPUSH_NTFY_TOPIC", c.NtfyTopic)
	c.Verbose = getEnvBool("AUTOPUSH_VERBOSE", c.Verbose)
	c.Debug = getEnvBool("AUTOPUSH_DEBUG", c.Debug)
	c.LogFile = getEnvString("AUTOPUSH_LOG_FILE", c.LogFile)
}

// SetupFlags sets up command-line flags to override config values
func (c *Config) SetupFlags(fs *flag.FlagSet) {
	// Save original values for inverted flags (for CLI ergonomics)
	origVerbose := c.Verbose
	origNotify := c.NotifyEnabled

	// Define command-line flags with inverted values for certain boolean flags
	fs.StringVar(&c.RepoPath, "repo", c.RepoPath, "Path to repository (default: current directory)")
	fs.StringVar(&c.Remote, "remote", c.Remote, "Remote to push to")
	fs.StringVar(&c.Branch, "branch", c.Branch, "Branch to push (default: the configured upstream)")
	fs.StringVar(&c.CommitPrefix, "prefix", c.CommitPrefix, "Custom commit message prefix")
	fs.IntVar(&c.IntervalMinutes, "interval", c.IntervalMinutes, "Minutes between backup passes (0 = run once and exit)")
	fs.IntVar(&c.MaxRetries, "max-retries", c.MaxRetries, "Consecutive failing cycles allowed in interval mode (0 = unlimited)")
	fs.BoolVar(&c.Verbose, "quiet", !origVerbose, "Hide informational messages")
	fs.BoolVar(&c.NotifyEnabled, "no-notify", !origNotify, "Skip the desktop notification")
	fs.IntVar(&c.NotifyDurationMs, "notify-duration", c.NotifyDurationMs, "Notification display duration in milliseconds")
	fs.StringVar(&c.NtfyTopic, "ntfy-topic", c.NtfyTopic, "ntfy topic URL for push notifications (optional)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Path to log file (default: ~/.local/share/autopush/logs/autopush-{repo-hash}.log)")
	fs.BoolVar(&c.Version, "version", c.Version, "Print version information and exit")
	fs.BoolVar(&c.ShowLogo, "logo", c.ShowLogo, "Display ASCII logo and exit")
}

// ParseFlags parses the command-line arguments and updates the config
func (c *Config) ParseFlags() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	c.SetupFlags(fs)

	var appArgs []string
	// Skip the program name (os.Args[0])
	if len(os.Args) > 1 {
		appArgs = os.Args[1:]
	}

	// Parse only the application arguments
	if err := fs.Parse(appArgs); err != nil {
		return errors.NewConfigError("flags", nil, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse command-line arguments: %v", err)))
	}

	// Invert boolean flags here, after parsing (for CLI ergonomics)
	// The flag names imply the opposite of their internal meaning:
	// -quiet means Verbose=false, -no-notify means NotifyEnabled=false
	c.Verbose = !c.Verbose
	c.NotifyEnabled = !c.NotifyEnabled

	return nil
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	if c.IntervalMinutes < 0 {
		err := fmt.Errorf("invalid interval: %d (must not be negative)", c.IntervalMinutes)
		return errors.NewConfigError("interval", c.IntervalMinutes, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if c.MaxRetries < 0 {
		err := fmt.Errorf("invalid max retries: %d (must not be negative)", c.MaxRetries)
		return errors.NewConfigError("max-retries", c.MaxRetries, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if c.NotifyDurationMs < 1 {
		err := fmt.Errorf("invalid notification duration: %d ms (must be at least 1)", c.NotifyDurationMs)
		return errors.NewConfigError("notify-duration", c.NotifyDurationMs, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if strings.TrimSpace(c.Remote) == "" {
		return errors.NewConfigError("remote", c.Remote, errors.Wrap(errors.ErrInvalidConfiguration, "remote must not be empty"))
	}

	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return errors.NewConfigError("repoPath", "", errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repoPath", c.RepoPath, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if c.LogFile == "" {
		// Follow XDG Base Directory Specification
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			// Default XDG data home if not set
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				// Fallback to the temp directory if home dir can't be determined
				logDir = os.TempDir()
			}
		}

		// Create a unique identifier for the repository
		repoHash := fmt.Sprintf("%x", sha256OfString(c.RepoPath)[:8])

		// Final log directory and file
		autopushLogDir := filepath.Join(logDir, "autopush", "logs")
		c.LogFile = filepath.Join(autopushLogDir, fmt.Sprintf("autopush-%s.log", repoHash))
	}

	return nil
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as int or a default value
func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			return false
		}
		// For any other value, fall back to default
	}
	return defaultValue
}

// sha256OfString returns the SHA256 hash of a string
func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
