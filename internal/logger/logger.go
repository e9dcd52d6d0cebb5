package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
)

// Logger is the interface implemented by DefaultLogger. It mirrors
// common.Logger and adds Close for flushing the log file on shutdown.
//
// Messages split into two channels: internal messages (Info, Warning, Error)
// that normally go only to the debug log file, and user-facing messages
// (InfoToUser, WarningToUser, Success, StatusMessage) that are always printed.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})

	InfoToUser(format string, args ...interface{})
	WarningToUser(format string, args ...interface{})
	Success(format string, args ...interface{})
	StatusMessage(format string, args ...interface{})

	// Close ensures any buffered data is written and closes open log file handles.
	Close() error
}

// DefaultLogger provides structured logging capability and implements the Logger interface
type DefaultLogger struct {
	mu       sync.Mutex
	logger   *slog.Logger
	enabled  bool
	logFile  string
	verbose  bool
	decorate bool
	stdout   io.Writer
	stderr   io.Writer
	file     *os.File // Store file handle for closing
}

// New creates a new Logger instance
func New(enabled bool, logFile string, verbose bool) Logger {
	return NewWithOutput(enabled, logFile, verbose, os.Stdout, os.Stderr)
}

// NewWithOutput creates a DefaultLogger with custom output writers
func NewWithOutput(enabled bool, logFile string, verbose bool, stdout, stderr io.Writer) *DefaultLogger {
	var logger *slog.Logger

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var file *os.File

	if enabled {
		logDir := filepath.Dir(logFile)
		if logDir != "." {
			err := os.MkdirAll(logDir, 0755)
			if err != nil {
				_, _ = fmt.Fprintf(stderr, "Failed to create log directory: %v\n", err)
			}
		}

		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			file = f
			fileHandler := slog.NewTextHandler(f, opts)
			logger = slog.New(fileHandler)

			logger.Info("autopush debug logging started")
		} else {
			// Fallback to standard logger
			logger = slog.New(slog.NewTextHandler(stderr, opts))
			_, _ = fmt.Fprintf(stderr, "Failed to open log file: %v, using stderr instead\n", err)
		}
	} else {
		// Setup non-file logger
		logger = slog.New(slog.NewTextHandler(stderr, opts))
	}

	return &DefaultLogger{
		logger:   logger,
		enabled:  enabled,
		logFile:  logFile,
		verbose:  verbose,
		decorate: writerIsTerminal(stdout),
		stdout:   stdout,
		stderr:   stderr,
		file:     file,
	}
}

// writerIsTerminal reports whether w is an interactive terminal.
// Emoji decoration is only used for interactive sessions; cron and
// redirected output get plain text.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// decorated prefixes msg with the given emoji on interactive terminals.
func (l *DefaultLogger) decorated(emoji, msg string) string {
	if !l.decorate {
		return msg
	}
	return emoji + " " + msg
}

// Info logs an informational message (file only)
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	l.logger.Info(msg)
}

// InfoToUser logs an informational message to both file and stdout
func (l *DefaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Info(msg)
	}

	_, _ = fmt.Fprintf(l.stdout, "%s\n", l.decorated("ℹ️ ", msg))
}

// Success logs a success message to both file and stdout
func (l *DefaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Info(msg)
	}

	_, _ = fmt.Fprintf(l.stdout, "%s\n", l.decorated("✅", msg))
}

// Warning logs a warning message
func (l *DefaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Warn(msg)
	}

	// Always show the message to the user when verbose is on,
	// regardless of whether file logging is enabled
	if l.verbose {
		_, _ = fmt.Fprintf(l.stdout, "%s\n", l.decorated("⚠️ ", msg))
	}
}

// WarningToUser logs a warning message to both file and stdout
func (l *DefaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Warn(msg)
	}

	_, _ = fmt.Fprintf(l.stdout, "%s\n", l.decorated("⚠️ ", msg))
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Error(msg)
	}

	// Always show errors to the user regardless of debug status
	_, _ = fmt.Fprintf(l.stderr, "%s\n", l.decorated("❌", msg))
}

// StatusMessage prints a status message to stdout only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(l.stdout, msg)
}

// Close ensures any buffered data is written and closes open log file handles
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		// Sync ensures any buffered data is flushed to disk before closing
		if err := l.file.Sync(); err != nil {
			return err
		}
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// SetStdout sets a custom writer for user-facing stdout messages only.
// NOTE: This does not affect where structured log messages from slog are directed.
// This method is thread-safe and is primarily intended for testing.
func (l *DefaultLogger) SetStdout(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = w
}

// SetStderr sets a custom writer for user-facing stderr messages only.
// NOTE: This does not affect where structured log messages from slog are directed.
// This method is thread-safe and is primarily intended for testing.
func (l *DefaultLogger) SetStderr(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stderr = w
}
