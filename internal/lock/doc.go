// Package lock provides the per-repository instance lock.
//
// Exactly one autopush process may operate on a given repository at a time.
// The lock is an advisory file lock (github.com/gofrs/flock) on a file in
// the system temp directory, keyed by a hash of the repository path. The
// holder's PID is written into the file so a contending process can report
// who owns the lock.
//
// Because the kernel drops advisory locks when their owner exits, a lock
// file left behind by a crashed process does not block the next run.
package lock
