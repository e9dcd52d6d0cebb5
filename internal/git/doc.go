// Package git performs the backup pass against a repository.
//
// A Syncer runs the three-step pipeline: stage all working-tree changes,
// commit them with a timestamped message, push to the configured remote.
// The steps are strictly sequential and unconditional - staging or commit
// failures are logged but never stop the push, matching the behavior of
// running the three commands back to back in a shell. Only the push's
// outcome decides the pass's error.
//
// Mutating operations shell out to system git through the CommandExecutor
// interface so repository hooks, commit signing, and credential helpers
// behave exactly as they would for a manual commit. Read-only inspection
// (repository detection, HEAD summary) uses go-git and never spawns a
// process.
package git
