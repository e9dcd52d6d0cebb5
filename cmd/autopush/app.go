package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bashhack/autopush/internal/common"
	"github.com/bashhack/autopush/internal/config"
	"github.com/bashhack/autopush/internal/constants"
	internalErrors "github.com/bashhack/autopush/internal/errors"
	"github.com/bashhack/autopush/internal/git"
	"github.com/bashhack/autopush/internal/lock"
	"github.com/bashhack/autopush/internal/logger"
	"github.com/bashhack/autopush/internal/notify"
)

// notificationTitle is the fixed title of every notification.
const notificationTitle = "autopush"

// Syncer performs the backup pass
type Syncer interface {
	Sync(ctx context.Context) (git.SyncResult, error)
	PrintSummary()
}

// Locker manages the per-repository instance lock
type Locker interface {
	Acquire() error
	Release() error
}

// Logger alias to common.Logger
type Logger = common.Logger

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components
	Logger   Logger
	Locker   Locker
	Syncer   Syncer
	Notifier notify.Notifier

	// I/O dependencies
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	Exit         func(code int)
	ExecLookPath func(file string) (string, error)
	IsRepository func(string) (bool, error)
}

// App is the main autopush application
type App struct {
	Config   *config.Config
	Logger   Logger
	Locker   Locker
	Syncer   Syncer
	Notifier notify.Notifier

	// I/O streams
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	exit         func(code int)
	execLookPath func(file string) (string, error)
	isRepository func(string) (bool, error)
}

// NewDefaultApp creates an App with standard dependencies. Configuration is
// layered here: defaults, then the config file, then the environment; flags
// are parsed later by the caller. A broken config file is reported but does
// not stop the run, since the command line may override everything it set.
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo

	if err := cfg.LoadFromFile(config.DefaultFilePath()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg.LoadFromEnvironment()

	opts := AppOptions{
		Config: cfg,
	}

	return NewApp(opts)
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Locker:       opts.Locker,
		Syncer:       opts.Syncer,
		Notifier:     opts.Notifier,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
	}

	// Set defaults for nil dependencies
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}

	return app
}

// Initialize sets up components not provided during construction
func (a *App) Initialize() error {
	if err := a.Config.Finalize(); err != nil {
		// Config.Finalize() already returns a properly wrapped error
		if internalErrors.Is(err, internalErrors.ErrInvalidConfiguration) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Config.Debug, a.Config.LogFile, a.Config.Verbose)
	}

	if a.Locker == nil {
		a.Locker = lock.New(a.Config.RepoPath)
	}

	if a.Syncer == nil {
		syncer, err := git.NewSyncer(git.SyncConfig{
			RepoPath:     a.Config.RepoPath,
			Remote:       a.Config.Remote,
			Branch:       a.Config.Branch,
			CommitPrefix: a.Config.CommitPrefix,
			Verbose:      a.Config.Verbose,
		}, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to create syncer: %w", err)
		}
		a.Syncer = syncer
	}

	if a.Notifier == nil {
		a.Notifier = notify.New(notify.Options{
			Enabled:    a.Config.NotifyEnabled,
			AppName:    notificationTitle,
			DurationMs: a.Config.NotifyDurationMs,
			NtfyTopic:  a.Config.NtfyTopic,
		})
	}

	return nil
}

// Run executes the application with the given context.
// Handles special flags and runs the backup pass (or the interval loop).
func (a *App) Run(ctx context.Context) error {
	// Ensure the app is fully initialised before doing any work.
	if err := a.Initialize(); err != nil {
		return err
	}

	// Handle special flags first
	if a.Config.Version {
		a.ShowVersion()
		return nil
	}

	if a.Config.ShowLogo {
		a.ShowLogo()
		return nil
	}

	// Ensure we always clean up logger / lock, even on early error paths
	defer func() {
		if err := a.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "Error during cleanup: %v\n", err)
		}
	}()

	// The notification comes first and is unconditional: it announces the
	// backup attempt, not its outcome, so it fires even when everything
	// after it fails.
	a.sendNotification(ctx)

	// Verify prerequisites
	if err := a.checkRequiredCommands(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "Error: %v. Please install it and try again.\n", err)
		return err
	}

	isRepo, err := a.isRepository(a.Config.RepoPath)
	if err != nil {
		a.Logger.Warning("Failed to check if path is a git repository: %v", err)
		return internalErrors.Wrap(internalErrors.ErrGitOperationFailed, err.Error())
	}
	if !isRepo {
		return internalErrors.ErrNotGitRepository
	}
	a.Logger.Info("Git repository verified")

	// Acquire the per-repository lock
	if err := a.Locker.Acquire(); err != nil {
		// Locker.Acquire() already returns a properly wrapped error
		if internalErrors.Is(err, internalErrors.ErrAlreadyRunning) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrLockAcquisitionFailure, err.Error())
	}

	if a.Config.IntervalMinutes > 0 {
		return a.runLoop(ctx)
	}
	return a.runOnce(ctx)
}

// runOnce performs a single backup pass. The pass's error (the push's
// error) becomes the process outcome, exactly as if the commands had run
// back to back in a shell.
func (a *App) runOnce(ctx context.Context) error {
	_, err := a.Syncer.Sync(ctx)
	return err
}

// runLoop repeats the backup pass on the configured interval until the
// context is canceled or too many consecutive passes fail.
func (a *App) runLoop(ctx context.Context) error {
	interval := time.Duration(a.Config.IntervalMinutes) * time.Minute

	a.Logger.StatusMessage("autopush started at %s", time.Now().Format(git.TimestampLayout))
	a.Logger.StatusMessage("Repository: %s", a.Config.RepoPath)
	a.Logger.StatusMessage("Remote:     %s", a.Config.Remote)
	a.Logger.StatusMessage("Interval:   %d minutes", a.Config.IntervalMinutes)
	a.Logger.StatusMessage("Press Ctrl+C to stop and view session summary")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	consecutiveErrors := 0

	for {
		if _, err := a.Syncer.Sync(ctx); err != nil {
			consecutiveErrors++
			a.Logger.Error("Backup pass failed: %v", err)

			if a.Config.MaxRetries > 0 && consecutiveErrors >= a.Config.MaxRetries {
				return internalErrors.Wrap(err,
					fmt.Sprintf("stopping after %d consecutive failing passes", consecutiveErrors))
			}
			a.Logger.StatusMessage("Will retry in %d minutes.", a.Config.IntervalMinutes)
		} else {
			consecutiveErrors = 0
		}

		select {
		case <-ctx.Done():
			a.Logger.Info("Received cancellation signal, shutting down gracefully...")
			return ctx.Err()
		case <-ticker.C:
		}

		// Announce the next pass; Run already announced the first one.
		a.sendNotification(ctx)
	}
}

// sendNotification fires the backup notification. It runs before the
// repository operations and its outcome never influences them; failures
// (headless host, no notification service) are logged and dropped.
func (a *App) sendNotification(ctx context.Context) {
	body := fmt.Sprintf("%s: %s", a.Config.CommitPrefix, time.Now().Format(git.TimestampLayout))
	if err := a.Notifier.Notify(ctx, notificationTitle, body); err != nil {
		a.Logger.Warning("Failed to send notification: %v", err)
	}
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "autopush %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// ShowLogo displays ASCII art logo
func (a *App) ShowLogo() {
	_, _ = fmt.Fprintf(a.Stdout, "%s\n", constants.Logo)
	_, _ = fmt.Fprintln(a.Stdout, "")

	asciiArtWidth := 80
	padding := (asciiArtWidth - len(constants.Tagline)) / 2
	centeredTagline := fmt.Sprintf("%s%s", strings.Repeat(" ", padding), constants.Tagline)
	_, _ = fmt.Fprintln(a.Stdout, centeredTagline)
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	_, err := a.execLookPath("git")
	if err != nil {
		return fmt.Errorf("git is not found in PATH")
	}
	return nil
}

// Close releases resources held by the App
func (a *App) Close() error {
	var errs []error

	// Release lock if it exists
	if a.Locker != nil {
		if err := a.Locker.Release(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("Failed to release lock during cleanup: %v", err)
			} else {
				_, _ = fmt.Fprintf(a.Stderr, "Failed to release lock during cleanup: %v\n", err)
			}
			errs = append(errs, err)
		}
	}

	if a.Logger != nil {
		if l, ok := a.Logger.(logger.Logger); ok && l != nil {
			if err := l.Close(); err != nil {
				_, _ = fmt.Fprintf(a.Stderr, "Failed to close logger: %v\n", err)
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CleanupOnSignal releases locks and shows summary on interruption
func (a *App) CleanupOnSignal() {
	if err := a.Close(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "Error during cleanup: %v\n", err)
	}

	// Show summary only if we're not running in --logo or --version mode
	if !a.Config.ShowLogo && !a.Config.Version && a.Syncer != nil {
		a.Syncer.PrintSummary()
	}
}
