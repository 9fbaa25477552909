package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to user-facing messages.
// A slice rather than a map so wrapped errors can be matched with errors.Is
// in declaration order.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Git
	// ===================
	{
		err: ErrGitUnavailable,
		info: ErrorInfo{
			Message: "Git is not installed or could not be started.",
			Action:  "Install git and make sure it is on your PATH, or set git.binary in the config.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "This folder is not a git repository.",
			Action:  "Run 'notesync init' to start tracking it.",
		},
	},
	{
		err: ErrInvalidRemoteURL,
		info: ErrorInfo{
			Message: "The remote URL is not supported.",
			Action:  "Use an https://, http://, or git@ URL.",
		},
	},
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "A git command failed.",
			Action:  "Re-run with --verbose to see the full git output.",
		},
	},
	{
		err: ErrLockHeld,
		info: ErrorInfo{
			Message: "Another notesync sync is already running in this repository.",
			Action:  "Wait for it to finish and try again.",
		},
	},
	{
		err: ErrOperationFailed,
		info: ErrorInfo{
			Message: "The operation did not complete.",
		},
	},

	// ===================
	// Assistant
	// ===================
	{
		err: ErrAssistantUnavailable,
		info: ErrorInfo{
			Message: "The Claude Code CLI is not installed.",
			Action:  "Install it with 'npm install -g @anthropic-ai/claude-code'.",
		},
	},
	{
		err: ErrClaudeInvocation,
		info: ErrorInfo{
			Message: "Failed to communicate with Claude. Check your API key and network.",
			Action:  "Verify ANTHROPIC_API_KEY is set correctly and you have network access.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration could not be loaded.",
		},
	},
	{
		err: ErrConfigInvalidGit,
		info: ErrorInfo{
			Message: "The git section of the configuration is invalid.",
			Action:  "Run 'notesync config show' and fix the git settings.",
		},
	},
	{
		err: ErrConfigInvalidAssistant,
		info: ErrorInfo{
			Message: "The assistant section of the configuration is invalid.",
			Action:  "Run 'notesync config show' and fix the assistant settings.",
		},
	},
	{
		err: ErrConfigInvalidLogging,
		info: ErrorInfo{
			Message: "The logging section of the configuration is invalid.",
			Action:  "Run 'notesync config show' and fix the logging settings.",
		},
	},

	// ===================
	// Input
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrUserInputRequired,
		info: ErrorInfo{
			Message: "This command needs input that was not provided.",
			Action:  "Pass the value as a flag when running non-interactively.",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "Canceled.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error, falling back to
// the error's own message when no sentinel matches.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
