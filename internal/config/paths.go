package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/notesync/internal/constants"
	"github.com/mrz1836/notesync/internal/errors"
)

// HomeEnvVar overrides the global notesync directory.
const HomeEnvVar = "NOTESYNC_HOME"

// GlobalConfigDir returns the global notesync directory: $NOTESYNC_HOME when
// set, otherwise ~/.notesync.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the project configuration file for the notes
// repository rooted at repoDir.
func ProjectConfigPath(repoDir string) string {
	return filepath.Join(repoDir, constants.AppHome, constants.ConfigFileName)
}

// LogFilePath returns the CLI log file location inside the global directory.
func LogFilePath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
