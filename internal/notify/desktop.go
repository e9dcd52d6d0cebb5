package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
)

// CommandRunner abstracts process execution so tests can intercept the
// notification command instead of spawning it.
type CommandRunner interface {
	Run(cmd *exec.Cmd) error
}

// execRunner is the default CommandRunner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(cmd *exec.Cmd) error { return cmd.Run() }

// DesktopNotifier sends notifications through the host's desktop
// notification service: notify-send on Linux and other freedesktop
// systems, osascript on macOS.
type DesktopNotifier struct {
	appName    string
	durationMs int
	goos       string
	runner     CommandRunner
}

// NewDesktopNotifier creates a DesktopNotifier for the current platform.
func NewDesktopNotifier(appName string, durationMs int) *DesktopNotifier {
	return &DesktopNotifier{
		appName:    appName,
		durationMs: durationMs,
		goos:       runtime.GOOS,
		runner:     execRunner{},
	}
}

// Notify implements Notifier. The command's exit status is returned as-is;
// a missing notification utility surfaces as an exec error the caller logs
// and ignores.
func (n *DesktopNotifier) Notify(ctx context.Context, title, body string) error {
	cmd, err := n.command(ctx, title, body)
	if err != nil {
		return err
	}
	return n.runner.Run(cmd)
}

// command builds the platform-specific notification command.
func (n *DesktopNotifier) command(ctx context.Context, title, body string) (*exec.Cmd, error) {
	switch n.goos {
	case "darwin":
		// osascript has no display-duration control; Notification Center
		// owns the dismiss timing.
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return exec.CommandContext(ctx, "osascript", "-e", script), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.CommandContext(ctx, "notify-send",
			"-a", n.appName,
			"-t", strconv.Itoa(n.durationMs),
			title, body), nil
	default:
		return nil, fmt.Errorf("desktop notifications are not supported on %s", n.goos)
	}
}
