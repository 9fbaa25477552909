// Package constants provides centralized constant values used throughout notesync.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by notesync.
const (
	// AppHome is the hidden directory name where notesync stores its config and logs.
	// It is created in the user's home directory and, optionally, in a project.
	AppHome = ".notesync"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// GitMetadataDir is the metadata entry whose presence marks a git working tree.
	GitMetadataDir = ".git"
)

// Git conventions.
const (
	// DefaultRemote is the remote name used for every remote operation.
	DefaultRemote = "origin"

	// DefaultGitBinary is the git executable looked up on PATH.
	DefaultGitBinary = "git"

	// DefaultCommitMessage is used when a commit message is neither given nor prompted for.
	DefaultCommitMessage = "Update notes"
)

// Assistant defaults.
const (
	// DefaultAssistantBinary is the Claude Code executable looked up on PATH.
	DefaultAssistantBinary = "claude"

	// DefaultAssistantTimeout bounds a single assistant edit.
	DefaultAssistantTimeout = 30 * time.Minute
)

// DefaultAssistantTools returns the tools the assistant may use while editing a note.
func DefaultAssistantTools() []string {
	return []string{"Edit", "Read", "Write"}
}

// Log rotation defaults for the CLI log file.
const (
	// LogMaxSizeMB is the size in megabytes before the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 5

	// LogMaxAgeDays is the number of days to keep rotated log files.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)
