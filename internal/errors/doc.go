// Package errors provides the error types and sentinel errors used throughout
// autopush.
//
// The package follows the standard library errors model: sentinel errors are
// matched with Is, and the typed errors (GitError, LockError, ConfigError)
// carry operation context and support Unwrap so callers can still match the
// sentinels they wrap.
//
// The convenience wrappers (Wrap, Wrapf, Is, As) exist so that the rest of
// the codebase can depend on a single errors package rather than mixing this
// package with the standard library one under an alias.
package errors
