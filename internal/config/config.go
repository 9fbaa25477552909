// Package config provides layered configuration for notesync.
//
// Sources, highest precedence first:
//  1. Environment variables (NOTESYNC_* prefix, "." replaced by "_")
//  2. Project config (<repo>/.notesync/config.yaml)
//  3. Global config (~/.notesync/config.yaml, or $NOTESYNC_HOME/config.yaml)
//  4. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/git or other internal packages.
package config

import "time"

// Config is the root configuration structure for notesync.
type Config struct {
	// Git contains settings for the git subprocess.
	Git GitConfig `yaml:"git" json:"git" mapstructure:"git"`

	// Assistant contains settings for the AI note-editing assistant.
	Assistant AssistantConfig `yaml:"assistant" json:"assistant" mapstructure:"assistant"`

	// Logging contains settings for the rotating CLI log file.
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
}

// GitConfig contains settings for git operations.
type GitConfig struct {
	// Binary is the git executable, looked up on PATH when not absolute.
	// Default: "git"
	Binary string `yaml:"binary" json:"binary" mapstructure:"binary"`

	// DefaultCommitMessage is used by commit and sync when no message is
	// given and no prompt can be shown.
	// Default: "Update notes"
	DefaultCommitMessage string `yaml:"default_commit_message" json:"default_commit_message" mapstructure:"default_commit_message"`
}

// AssistantConfig contains settings for the Claude Code CLI.
type AssistantConfig struct {
	// Binary is the assistant executable.
	// Default: "claude"
	Binary string `yaml:"binary" json:"binary" mapstructure:"binary"`

	// AllowedTools is passed to the assistant as --allowedTools.
	// Default: [Edit, Read, Write]
	AllowedTools []string `yaml:"allowed_tools" json:"allowed_tools" mapstructure:"allowed_tools"`

	// Timeout bounds a single edit. Zero disables the timeout.
	// Default: 30m
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

// LoggingConfig contains settings for ~/.notesync/logs/notesync.log.
type LoggingConfig struct {
	FileEnabled bool `yaml:"file_enabled" json:"file_enabled" mapstructure:"file_enabled"`
	MaxSizeMB   int  `yaml:"max_size_mb" json:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups  int  `yaml:"max_backups" json:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays  int  `yaml:"max_age_days" json:"max_age_days" mapstructure:"max_age_days"`
	Compress    bool `yaml:"compress" json:"compress" mapstructure:"compress"`
}
