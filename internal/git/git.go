package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bashhack/autopush/internal/common"
	"github.com/bashhack/autopush/internal/errors"
)

// TimestampLayout is the wall-clock format embedded in commit messages and
// notification bodies.
const TimestampLayout = "2006-01-02 15:04:05"

// SyncConfig contains configuration for a Syncer instance
type SyncConfig struct {
	// Repository path; every git command runs against it, never the
	// caller's working directory.
	RepoPath string

	// Remote to push to after each backup commit.
	Remote string

	// Branch to push. Empty means the remote decides based on the
	// configured upstream of the current branch.
	Branch string

	// CommitPrefix prepends every backup commit message.
	CommitPrefix string

	// Verbose enables per-step user output.
	Verbose bool
}

// Validate checks the configuration for values Sync cannot work with.
func (c SyncConfig) Validate() error {
	if strings.TrimSpace(c.RepoPath) == "" {
		return errors.Wrap(errors.ErrInvalidConfiguration, "repository path must not be empty")
	}
	if strings.TrimSpace(c.Remote) == "" {
		return errors.Wrap(errors.ErrInvalidConfiguration, "remote must not be empty")
	}
	return nil
}

// Logger alias to common.Logger
type Logger = common.Logger

// SyncResult reports what a single backup pass actually did.
type SyncResult struct {
	HadChanges    bool
	Staged        bool
	Committed     bool
	Pushed        bool
	CommitMessage string
}

// Syncer performs the backup pass against a repository: stage everything,
// commit with a timestamped message, push.
type Syncer struct {
	config   SyncConfig
	logger   Logger
	executor CommandExecutor
	now      func() time.Time

	commitsCount int
	pushesCount  int
	startTime    time.Time
}

// NewSyncer creates a Syncer with the default executor.
func NewSyncer(config SyncConfig, logger Logger) (*Syncer, error) {
	return NewSyncerWithDeps(config, logger, NewExecExecutor())
}

// NewSyncerWithDeps creates a Syncer with a custom executor.
func NewSyncerWithDeps(config SyncConfig, logger Logger, executor CommandExecutor) (*Syncer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Syncer{
		config:    config,
		logger:    logger,
		executor:  executor,
		now:       time.Now,
		startTime: time.Now(),
	}, nil
}

// Sync runs one backup pass. The three steps are strictly sequential and
// unconditional: a staging or commit failure is logged and the push is
// still attempted, so the remote always receives whatever is already
// committed. The returned error is the push's error and nothing else's.
func (s *Syncer) Sync(ctx context.Context) (SyncResult, error) {
	timestamp := s.now().Format(TimestampLayout)
	message := fmt.Sprintf("%s: %s", s.config.CommitPrefix, timestamp)
	result := SyncResult{CommitMessage: message}

	// Purely informational; the pipeline does not branch on it.
	hadChanges, err := s.HasUncommittedChanges(ctx)
	if err != nil {
		s.logger.Warning("Failed to check git status: %v", err)
	}
	result.HadChanges = hadChanges

	if err := s.runGitCommand(ctx, "add", "-A"); err != nil {
		s.logger.Warning("Failed to stage changes: %v", err)
	} else {
		result.Staged = true
	}

	if err := s.runGitCommand(ctx, "commit", "-m", message); err != nil {
		// Expected on a clean tree: nothing to commit.
		s.logger.Info("Commit step did not create a commit: %v", err)
		if s.config.Verbose && !hadChanges {
			s.logger.InfoToUser("No changes to commit at %s", timestamp)
		}
	} else {
		result.Committed = true
		s.commitsCount++
		if s.config.Verbose {
			s.logger.Success("Created commit: %s", message)
		}
	}

	pushArgs := []string{"push", s.config.Remote}
	if s.config.Branch != "" {
		pushArgs = append(pushArgs, s.config.Branch)
	}
	if err := s.runGitCommand(ctx, pushArgs...); err != nil {
		s.logger.Error("Failed to push to %s: %v", s.config.Remote, err)
		if errors.Is(err, errors.ErrGitOperationFailed) {
			return result, errors.Wrap(errors.ErrPushFailed, err.Error())
		}
		return result, errors.NewGitError("push", pushArgs[1:],
			errors.Wrap(errors.ErrPushFailed, err.Error()), "")
	}
	result.Pushed = true
	s.pushesCount++
	if s.config.Verbose {
		s.logger.Success("Pushed to %s", s.config.Remote)
	}

	return result, nil
}

// HasUncommittedChanges returns true if the repository contains changes
// that have not been committed yet.
func (s *Syncer) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := s.runGitCommandWithOutput(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// CurrentBranch returns the name of the current git branch.
func (s *Syncer) CurrentBranch(ctx context.Context) (string, error) {
	output, err := s.runGitCommandWithOutput(ctx, "branch", "--show-current")
	if err != nil {
		return "unknown", err
	}
	return strings.TrimSpace(output), nil
}

// PrintSummary prints a summary of the autopush session.
func (s *Syncer) PrintSummary() {
	duration := time.Since(s.startTime)
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	s.logger.StatusMessage("")
	s.logger.StatusMessage("---------------------------------------------")
	s.logger.StatusMessage("autopush Session Summary")
	s.logger.StatusMessage("---------------------------------------------")
	s.logger.StatusMessage("Backup commits made: %d", s.commitsCount)
	s.logger.StatusMessage("Successful pushes:   %d", s.pushesCount)
	s.logger.StatusMessage("Session duration:    %dh %dm %ds", hours, minutes, seconds)

	if info, err := HeadInfo(s.config.RepoPath); err == nil {
		s.logger.StatusMessage("Current HEAD:        %s %s", info.ShortHash(), strings.TrimSpace(info.Message))
	}

	s.logger.StatusMessage("---------------------------------------------")
	s.logger.StatusMessage("autopush finished at %s", time.Now().Format(TimestampLayout))
}

// runGitCommand executes a git command in the repository directory.
func (s *Syncer) runGitCommand(ctx context.Context, args ...string) error {
	cmd := s.gitCommand(ctx, args...)
	return s.executor.Execute(cmd)
}

// runGitCommandWithOutput executes a git command and returns its output.
func (s *Syncer) runGitCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := s.gitCommand(ctx, args...)
	return s.executor.ExecuteWithOutput(cmd)
}

// gitCommand builds a git invocation pinned to the configured repository.
func (s *Syncer) gitCommand(ctx context.Context, args ...string) *exec.Cmd {
	baseArgs := []string{"-C", s.config.RepoPath}
	cmd := exec.CommandContext(ctx, "git", append(baseArgs, args...)...)
	cmd.Dir = s.config.RepoPath
	return cmd
}
