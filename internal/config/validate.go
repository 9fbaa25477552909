package config

import (
	"strings"

	"github.com/mrz1836/notesync/internal/errors"
)

// Validate checks the configuration and returns the first problem found.
//
// Rules:
//   - git.binary and git.default_commit_message must not be blank
//   - assistant.binary must not be blank and assistant.timeout must not be negative
//   - assistant.allowed_tools entries must not be blank
//   - logging sizes and retention must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateGitConfig(&cfg.Git); err != nil {
		return err
	}
	if err := validateAssistantConfig(&cfg.Assistant); err != nil {
		return err
	}
	return validateLoggingConfig(&cfg.Logging)
}

func validateGitConfig(cfg *GitConfig) error {
	if strings.TrimSpace(cfg.Binary) == "" {
		return errors.Wrap(errors.ErrConfigInvalidGit, "git.binary must not be empty")
	}
	if strings.TrimSpace(cfg.DefaultCommitMessage) == "" {
		return errors.Wrap(errors.ErrConfigInvalidGit, "git.default_commit_message must not be empty")
	}
	return nil
}

func validateAssistantConfig(cfg *AssistantConfig) error {
	if strings.TrimSpace(cfg.Binary) == "" {
		return errors.Wrap(errors.ErrConfigInvalidAssistant, "assistant.binary must not be empty")
	}
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAssistant,
			"assistant.timeout cannot be negative, got %s", cfg.Timeout)
	}
	for i, tool := range cfg.AllowedTools {
		if strings.TrimSpace(tool) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidAssistant,
				"assistant.allowed_tools[%d] must not be empty", i)
		}
	}
	return nil
}

func validateLoggingConfig(cfg *LoggingConfig) error {
	switch {
	case cfg.MaxSizeMB < 0:
		return errors.Wrapf(errors.ErrConfigInvalidLogging, "logging.max_size_mb cannot be negative, got %d", cfg.MaxSizeMB)
	case cfg.MaxBackups < 0:
		return errors.Wrapf(errors.ErrConfigInvalidLogging, "logging.max_backups cannot be negative, got %d", cfg.MaxBackups)
	case cfg.MaxAgeDays < 0:
		return errors.Wrapf(errors.ErrConfigInvalidLogging, "logging.max_age_days cannot be negative, got %d", cfg.MaxAgeDays)
	}
	return nil
}
