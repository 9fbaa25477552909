package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/notesync/internal/errors"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "NOTESYNC"

// newViperInstance creates a viper instance with defaults and the NOTESYNC_
// environment layer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError reports whether err means the file is simply absent.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound) || os.IsNotExist(err)
}

// viperDecoderOption decodes durations ("30m") and comma-separated lists
// (NOTESYNC_ASSISTANT_ALLOWED_TOOLS=Edit,Read).
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// unmarshalAndValidate decodes v into a Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration for the notes repository at repoDir. Missing
// config files are not an error.
func Load(ctx context.Context, repoDir string) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// No home directory: defaults, project file and env still apply.
		globalPath = ""
	}

	cfg, err := LoadFromPaths(ctx, ProjectConfigPath(repoDir), globalPath)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("git.binary", cfg.Git.Binary).
		Str("assistant.binary", cfg.Assistant.Binary).
		Dur("assistant.timeout", cfg.Assistant.Timeout).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadFromPaths loads configuration from explicit files. The project file
// merges over the global one; either path may be empty to skip that layer.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}
