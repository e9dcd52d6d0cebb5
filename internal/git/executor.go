package git

import (
	"bytes"
	"os/exec"

	"github.com/bashhack/autopush/internal/errors"
)

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// Execute runs a command and returns its exit code
	Execute(cmd *exec.Cmd) error

	// ExecuteWithOutput runs a command and returns its output and exit code
	ExecuteWithOutput(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute
func (e *ExecExecutor) Execute(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		operation, args := splitCommand(cmd)
		wrappedErr := errors.Wrap(errors.ErrGitOperationFailed, err.Error())
		return errors.NewGitError(operation, args, wrappedErr, stderr.String())
	}
	return nil
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		operation, args := splitCommand(cmd)
		wrappedErr := errors.Wrap(errors.ErrGitOperationFailed, err.Error())
		return "", errors.NewGitError(operation, args, wrappedErr, stderr.String())
	}

	return stdout.String(), nil
}

// splitCommand extracts the executable and its arguments for error reporting.
func splitCommand(cmd *exec.Cmd) (operation string, args []string) {
	if len(cmd.Args) > 0 {
		operation = cmd.Args[0]
	}
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:]
	}
	return operation, args
}
