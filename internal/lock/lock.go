package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	autopushErrors "github.com/bashhack/autopush/internal/errors"
)

// Locker prevents concurrent autopush instances for the same repository.
// Overlapping runs (two cron triggers, or a manual run during a scheduled
// one) would race on the index and could interleave commit and push.
type Locker struct {
	lockFile string
	fl       *flock.Flock
	pid      int
	acquired bool
}

// New creates a Locker for the specified repository path. The lock file
// lives in the system temp directory and is keyed by a hash of the
// repository path so that different repositories never contend.
func New(repoPath string) *Locker {
	repoHash := fmt.Sprintf("%x", sha256.Sum256([]byte(repoPath)))[:16]
	lockFile := filepath.Join(os.TempDir(), fmt.Sprintf("autopush-%s.lock", repoHash))

	return &Locker{
		lockFile: lockFile,
		fl:       flock.New(lockFile),
		pid:      os.Getpid(),
	}
}

// Acquire tries to take the lock without blocking. If another live process
// holds it, the returned error wraps ErrAlreadyRunning and carries the
// owner's PID when it can be read from the lock file.
//
// A lock file left behind by a crashed process is not an obstacle: the
// kernel releases the flock when its owner dies, so TryLock succeeds and
// the stale PID is simply overwritten.
func (l *Locker) Acquire() error {
	locked, err := l.fl.TryLock()
	if err != nil {
		return autopushErrors.NewLockError(l.lockFile, 0,
			autopushErrors.Wrap(err, "failed to acquire lock"))
	}
	if !locked {
		otherPid, _ := l.readLockFilePid()
		return autopushErrors.NewLockError(l.lockFile, otherPid, autopushErrors.ErrAlreadyRunning)
	}

	l.acquired = true

	if err := l.writePid(); err != nil {
		if releaseErr := l.Release(); releaseErr != nil {
			return autopushErrors.Wrap(err, fmt.Sprintf("failed to write PID and failed to release lock: %v", releaseErr))
		}
		return err
	}

	return nil
}

// Release releases the lock if it was acquired and removes the lock file.
// Releasing a Locker that never acquired the lock is a no-op; in particular
// it must not remove a lock file owned by another instance.
func (l *Locker) Release() error {
	if l.fl == nil || !l.acquired {
		return nil
	}

	var err error
	if unlockErr := l.fl.Unlock(); unlockErr != nil {
		err = autopushErrors.NewLockError(l.lockFile, l.pid,
			autopushErrors.Wrap(unlockErr, "failed to release lock"))
	}

	l.acquired = false

	// Always try to remove the lock file, regardless of previous errors,
	// so we clean up as much as possible. Only report the removal error
	// if there were no previous errors.
	if removeErr := os.Remove(l.lockFile); removeErr != nil && !os.IsNotExist(removeErr) && err == nil {
		err = autopushErrors.NewLockError(l.lockFile, l.pid,
			autopushErrors.Wrap(removeErr, "failed to remove lock file"))
	}

	return err
}

// LockFile returns the path of the lock file backing this Locker.
func (l *Locker) LockFile() string {
	return l.lockFile
}

// writePid records the current PID in the lock file for diagnostics.
func (l *Locker) writePid() error {
	err := os.WriteFile(l.lockFile, []byte(strconv.Itoa(l.pid)), 0666)
	if err != nil {
		return autopushErrors.NewLockError(l.lockFile, l.pid,
			autopushErrors.Wrap(err, "failed to write PID to lock file"))
	}
	return nil
}

// readLockFilePid reads and parses the PID from the lock file.
func (l *Locker) readLockFilePid() (int, error) {
	data, err := os.ReadFile(l.lockFile)
	if err != nil {
		return 0, autopushErrors.Wrap(err, "failed to read lock file")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, autopushErrors.Wrap(err, "invalid PID in lock file")
	}

	return pid, nil
}
