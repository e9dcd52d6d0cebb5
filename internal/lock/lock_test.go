package lock

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/autopush/internal/errors"
)

func TestAcquireAndRelease(t *testing.T) {
	t.Parallel()

	locker := New(t.TempDir())

	require.NoError(t, locker.Acquire())

	// The lock file must exist and carry our PID while held
	data, err := os.ReadFile(locker.LockFile())
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, locker.Release())

	// Released locks clean up their lock file
	_, err = os.Stat(locker.LockFile())
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireContention(t *testing.T) {
	t.Parallel()

	repoPath := t.TempDir()

	first := New(repoPath)
	require.NoError(t, first.Acquire())
	defer func() { _ = first.Release() }()

	second := New(repoPath)
	err := second.Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAlreadyRunning),
		"expected ErrAlreadyRunning, got: %v", err)

	var lockErr *errors.LockError
	require.True(t, errors.As(err, &lockErr))
	assert.Equal(t, os.Getpid(), lockErr.PID, "the error should name the lock holder")
}

func TestDifferentRepositoriesDoNotContend(t *testing.T) {
	t.Parallel()

	first := New(t.TempDir())
	second := New(t.TempDir())

	assert.NotEqual(t, first.LockFile(), second.LockFile())

	require.NoError(t, first.Acquire())
	defer func() { _ = first.Release() }()

	require.NoError(t, second.Acquire())
	assert.NoError(t, second.Release())
}

func TestReacquireAfterRelease(t *testing.T) {
	t.Parallel()

	repoPath := t.TempDir()

	locker := New(repoPath)
	require.NoError(t, locker.Acquire())
	require.NoError(t, locker.Release())

	again := New(repoPath)
	require.NoError(t, again.Acquire())
	assert.NoError(t, again.Release())
}

func TestLosingContenderReleaseKeepsHolderLocked(t *testing.T) {
	t.Parallel()

	repoPath := t.TempDir()

	holder := New(repoPath)
	require.NoError(t, holder.Acquire())
	defer func() { _ = holder.Release() }()

	// A contender loses the race and, like the app's deferred cleanup,
	// still calls Release on its way out.
	loser := New(repoPath)
	err := loser.Acquire()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrAlreadyRunning))
	require.NoError(t, loser.Release())

	// The holder's lock file must survive the loser's cleanup
	_, err = os.Stat(holder.LockFile())
	require.NoError(t, err, "the holder's lock file must not be removed by a losing contender")

	// And a third instance must still be locked out
	third := New(repoPath)
	err = third.Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAlreadyRunning),
		"expected ErrAlreadyRunning while the first instance still holds the lock, got: %v", err)
}

func TestReleaseWithoutAcquire(t *testing.T) {
	t.Parallel()

	locker := New(t.TempDir())
	// Releasing a never-acquired lock must not blow up
	assert.NoError(t, locker.Release())
}

func TestStaleLockFileDoesNotBlock(t *testing.T) {
	t.Parallel()

	repoPath := t.TempDir()
	locker := New(repoPath)

	// Simulate a crashed process: a lock file with a dead PID but no
	// kernel lock held on it.
	require.NoError(t, os.WriteFile(locker.LockFile(), []byte("999999"), 0666))

	require.NoError(t, locker.Acquire())
	defer func() { _ = locker.Release() }()

	// Our PID replaced the stale one
	data, err := os.ReadFile(locker.LockFile())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))
}
