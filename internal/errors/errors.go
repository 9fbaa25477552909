// Package errors provides centralized error handling for notesync.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrGitOperation indicates that a git command ran but exited with a
	// non-zero status.
	ErrGitOperation = errors.New("git operation failed")

	// ErrGitUnavailable indicates that the git executable could not be
	// found or started.
	ErrGitUnavailable = errors.New("git is not available")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrInvalidRemoteURL indicates a remote URL with an unsupported scheme.
	ErrInvalidRemoteURL = errors.New("invalid remote URL")

	// ErrOperationFailed indicates a sync operation completed with a failed
	// outcome. The outcome itself has already been reported to the user.
	ErrOperationFailed = errors.New("operation failed")

	// ErrLockHeld indicates another notesync process holds the repository lock.
	ErrLockHeld = errors.New("repository is locked by another notesync process")

	// ErrClaudeInvocation indicates that the Claude Code CLI failed to execute
	// or returned a non-zero exit code.
	ErrClaudeInvocation = errors.New("claude invocation failed")

	// ErrAssistantUnavailable indicates that the AI assistant CLI is not installed.
	ErrAssistantUnavailable = errors.New("assistant CLI not available")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGit indicates an invalid Git configuration value.
	ErrConfigInvalidGit = errors.New("invalid Git configuration")

	// ErrConfigInvalidAssistant indicates an invalid assistant configuration value.
	ErrConfigInvalidAssistant = errors.New("invalid assistant configuration")

	// ErrConfigInvalidLogging indicates an invalid logging configuration value.
	ErrConfigInvalidLogging = errors.New("invalid logging configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrUnsupportedOutputFormat indicates that an unsupported output format was specified.
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrUserInputRequired indicates user input is required but not provided.
	// Commands should exit with code 2 when this error is returned.
	ErrUserInputRequired = errors.New("user input required")

	// ErrMenuCanceled indicates that the user canceled a prompt.
	ErrMenuCanceled = errors.New("menu canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
