package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/notesync/internal/constants"
)

// DefaultConfig returns a Config holding the built-in defaults, the base
// layer under files and environment.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Binary:               constants.DefaultGitBinary,
			DefaultCommitMessage: constants.DefaultCommitMessage,
		},
		Assistant: AssistantConfig{
			Binary:       constants.DefaultAssistantBinary,
			AllowedTools: constants.DefaultAssistantTools(),
			Timeout:      constants.DefaultAssistantTimeout,
		},
		Logging: LoggingConfig{
			FileEnabled: true,
			MaxSizeMB:   constants.LogMaxSizeMB,
			MaxBackups:  constants.LogMaxBackups,
			MaxAgeDays:  constants.LogMaxAgeDays,
			Compress:    constants.LogCompress,
		},
	}
}

// setDefaults mirrors DefaultConfig on a viper instance.
// Keys must match the mapstructure tags exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("git.binary", d.Git.Binary)
	v.SetDefault("git.default_commit_message", d.Git.DefaultCommitMessage)

	v.SetDefault("assistant.binary", d.Assistant.Binary)
	v.SetDefault("assistant.allowed_tools", d.Assistant.AllowedTools)
	v.SetDefault("assistant.timeout", d.Assistant.Timeout.String())

	v.SetDefault("logging.file_enabled", d.Logging.FileEnabled)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)
}
