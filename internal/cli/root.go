// Package cli provides the command-line interface for notesync.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/notesync/internal/ai"
	"github.com/mrz1836/notesync/internal/config"
	"github.com/mrz1836/notesync/internal/errors"
	"github.com/mrz1836/notesync/internal/git"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// It is set during PersistentPreRunE and read via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has
// executed; before that it returns a zero-value logger that discards output.
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

func setGlobalCLILogger(logger zerolog.Logger) {
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// rootOption customizes the root command. Tests use it to swap the
// process executors and the log destination.
type rootOption func(*commandEnv)

// withGitExecutor replaces the git process executor.
func withGitExecutor(e git.CommandExecutor) rootOption {
	return func(env *commandEnv) {
		env.gitExec = e
	}
}

// withAssistantExecutor replaces the assistant process executor.
func withAssistantExecutor(e ai.CommandExecutor) rootOption {
	return func(env *commandEnv) {
		env.aiExec = e
	}
}

// withLogWriter sends logs to w instead of stderr and the log file.
func withLogWriter(w io.Writer) rootOption {
	return func(env *commandEnv) {
		env.logWriter = w
	}
}

// newRootCmd creates and returns the root command for the notesync CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo, opts ...rootOption) *cobra.Command {
	v := viper.New()
	env := &commandEnv{flags: flags}
	for _, opt := range opts {
		opt(env)
	}

	cmd := &cobra.Command{
		Use:   "notesync",
		Short: "notesync - keep a notes folder in sync with git",
		Long: `notesync reports the sync state of a notes folder backed by git and
runs the operations that keep it in sync with a remote: commit, fetch,
pull, push and first-time remote setup.

Every git failure is translated into a short message you can act on.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd, flags); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			return env.init(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddStatusCommand(cmd, env)
	AddCheckCommand(cmd, env)
	AddInitCommand(cmd, env)
	AddCommitCommand(cmd, env)
	AddFetchCommand(cmd, env)
	AddPullCommand(cmd, env)
	AddPushCommand(cmd, env)
	AddRemoteCommand(cmd, env)
	AddSyncCommand(cmd, env)
	AddEditCommand(cmd, env)
	AddConfigCommand(cmd, env)

	return cmd
}

// init loads configuration and the logger. A broken config file is reported
// and replaced by the defaults so status and sync keep working.
func (env *commandEnv) init(ctx context.Context) error {
	cfg, cfgErr := config.Load(ctx, env.flags.Dir)
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}
	env.cfg = cfg

	if env.logWriter != nil {
		env.logger = InitLoggerWithWriter(env.flags.Verbose, env.flags.Quiet, env.logWriter)
	} else {
		env.logger = InitLogger(env.flags.Verbose, env.flags.Quiet, cfg.Logging)
	}
	setGlobalCLILogger(env.logger)

	if cfgErr != nil {
		env.logger.Warn().Err(cfgErr).Msg("failed to load config, using defaults")
	}
	return nil
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors not already shown to the user are printed to stderr.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	CloseLogFile()
	reportError(cmd.ErrOrStderr(), err)
	return err
}

// reportError prints err with a suggested action unless it was already
// reported as part of an operation outcome.
func reportError(w io.Writer, err error) {
	if err == nil ||
		stderrors.Is(err, errors.ErrOperationFailed) ||
		stderrors.Is(err, errors.ErrJSONErrorOutput) {
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	if _, action := errors.Actionable(err); action != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", action)
	}
}
