// Command autopush commits and pushes a repository's pending changes and
// tells you about it.
//
// Each run fires a desktop notification, stages every working-tree change,
// commits with a timestamped "Automated backup" message, and pushes to the
// configured remote. With -interval it keeps running and repeats the pass
// on a timer, which is the recommended way to use it for unattended
// backups of notes, dotfiles, or any repository that should just stay
// pushed.
//
// Usage:
//
//	autopush [flags]
//
// The repository path, remote, and all other settings come from (in
// ascending precedence) ~/.config/autopush/config.toml, AUTOPUSH_*
// environment variables, and flags. Run autopush -h for the flag list.
//
// Exit status for a one-shot run is the outcome of the push: a failed
// stage or commit (for example, nothing to commit) is logged but does not
// fail the run on its own.
package main
