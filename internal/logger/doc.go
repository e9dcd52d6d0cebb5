// Package logger provides autopush's logging facilities.
//
// Two channels are maintained: a structured debug log (log/slog text handler
// writing to a per-repository log file when debug logging is enabled) and
// plain user-facing output on stdout/stderr. User messages are decorated
// with emoji only when stdout is an interactive terminal; unattended runs
// from cron produce plain text.
package logger
