// Package autopush is an automatic commit-and-push backup tool.
//
// autopush takes whatever is sitting in a repository's working tree,
// commits it with a timestamped "Automated backup" message, pushes it to
// the configured remote, and announces the run with a desktop
// notification. It exists for repositories that should simply always be
// pushed - notes, journals, dotfiles, scratch projects - where nobody is
// going to write commit messages and the only failure that matters is the
// push not reaching the remote.
//
// # Quick Start
//
//	# Back up the current directory's repository once
//	autopush
//
//	# Keep backing it up every 30 minutes
//	autopush -interval 30
//
// # Behavior
//
// The pass is deliberately unconditional: notification, stage, commit,
// push, in that order, every time. A clean tree means the commit step is a
// no-op and the push re-confirms the remote is current. Intermediate
// failures are logged but only the push's outcome decides the exit status,
// matching the semantics of running the underlying git commands back to
// back in a shell.
//
// # Key Features
//
//   - Desktop notifications (notify-send/osascript), optionally mirrored
//     to an ntfy topic for headless machines
//   - One-shot mode for cron, interval mode for long-running sessions
//   - Per-repository instance locking so overlapping runs never race
//   - Layered configuration: config file, environment, flags
//
// See the cmd/autopush package for the command-line interface and the
// internal packages for the implementation.
package autopush
