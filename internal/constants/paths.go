package constants

// Log file names.
const (
	// CLILogFileName is the name of the CLI log file, located in ~/.notesync/logs.
	CLILogFileName = "notesync.log"
)

// Configuration file names.
const (
	// ConfigFileName is the name of both the global and the project configuration file.
	ConfigFileName = "config.yaml"
)

// Lock file names.
const (
	// SyncLockFileName is created inside the .git directory while a sync runs.
	SyncLockFileName = "notesync.lock"
)
