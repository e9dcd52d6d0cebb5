package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/autopush/internal/errors"
)

// writeConfigFile writes content to a temp TOML file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
repo_path = "/srv/backups/notes"
remote = "backup"
commit_prefix = "Nightly backup"
interval_minutes = 30

[notify]
enabled = true
duration_ms = 5000
ntfy_topic = "https://ntfy.sh/my-backups"
`)

	cfg := New()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "/srv/backups/notes", cfg.RepoPath)
	assert.Equal(t, "backup", cfg.Remote)
	assert.Equal(t, "Nightly backup", cfg.CommitPrefix)
	assert.Equal(t, 30, cfg.IntervalMinutes)
	assert.True(t, cfg.NotifyEnabled)
	assert.Equal(t, 5000, cfg.NotifyDurationMs)
	assert.Equal(t, "https://ntfy.sh/my-backups", cfg.NtfyTopic)
}

func TestLoadFromFileOnlyOverridesNamedSettings(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
remote = "backup"

[notify]
duration_ms = 2500
`)

	cfg := New()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "backup", cfg.Remote)
	assert.Equal(t, 2500, cfg.NotifyDurationMs)

	// Everything the file does not name keeps its default
	assert.Equal(t, DefaultCommitPrefix, cfg.CommitPrefix)
	assert.Equal(t, 0, cfg.IntervalMinutes)
	assert.True(t, cfg.NotifyEnabled)
	assert.True(t, cfg.Verbose)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	t.Parallel()

	cfg := New()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.NoError(t, err, "a missing config file is not an error")
}

func TestLoadFromFileEmptyPath(t *testing.T) {
	t.Parallel()

	cfg := New()
	assert.NoError(t, cfg.LoadFromFile(""))
}

func TestLoadFromFileMalformed(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `remote = [this is not toml`)

	cfg := New()
	err := cfg.LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}

func TestDefaultFilePath(t *testing.T) {
	t.Run("AUTOPUSH_CONFIG wins", func(t *testing.T) {
		t.Setenv("AUTOPUSH_CONFIG", "/etc/autopush/config.toml")
		t.Setenv("XDG_CONFIG_HOME", "/ignored")
		assert.Equal(t, "/etc/autopush/config.toml", DefaultFilePath())
	})

	t.Run("XDG config home", func(t *testing.T) {
		t.Setenv("AUTOPUSH_CONFIG", "")
		os.Unsetenv("AUTOPUSH_CONFIG")
		t.Setenv("XDG_CONFIG_HOME", "/home/dev/.config")
		assert.Equal(t, filepath.Join("/home/dev/.config", "autopush", "config.toml"), DefaultFilePath())
	})
}
