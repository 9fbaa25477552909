package git

import (
	"fmt"
	"strings"

	nserrors "github.com/mrz1836/notesync/internal/errors"
)

// Sentinels re-exported from internal/errors for callers of this package.
var (
	// ErrGitOperation matches every *CommandError.
	ErrGitOperation = nserrors.ErrGitOperation

	// ErrGitUnavailable is wrapped when git cannot be started.
	ErrGitUnavailable = nserrors.ErrGitUnavailable

	// ErrNotGitRepo marks a path without git metadata.
	ErrNotGitRepo = nserrors.ErrNotGitRepo
)

// CommandError describes a git invocation that exited non-zero.
// Its message is the raw diagnostic git printed.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// newCommandError builds a CommandError from a failed result.
func newCommandError(res *CommandResult, args ...string) *CommandError {
	return &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
}

// Error returns the trimmed stderr, or a generic exit-code message when git
// printed nothing.
func (e *CommandError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return exitCodeMessage(e.Args, e.ExitCode)
}

// Unwrap lets errors.Is match ErrGitOperation.
func (e *CommandError) Unwrap() error {
	return ErrGitOperation
}

// exitCodeMessage is the fallback diagnostic for a silent failure.
func exitCodeMessage(args []string, code int) string {
	verb := "command"
	if len(args) > 0 {
		verb = args[0]
	}
	return fmt.Sprintf("git %s exited with code %d", verb, code)
}

// SpawnError reports that git could not be started at all.
// It matches ErrGitUnavailable and the underlying cause.
type SpawnError struct {
	Action string
	Err    error
}

// Error returns "Failed to <action>: <cause>".
func (e *SpawnError) Error() string {
	return fmt.Sprintf("Failed to %s: %v", e.Action, e.Err)
}

// Unwrap exposes both the cause and ErrGitUnavailable.
func (e *SpawnError) Unwrap() []error {
	return []error{e.Err, ErrGitUnavailable}
}
