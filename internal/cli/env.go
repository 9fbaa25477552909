package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/notesync/internal/ai"
	"github.com/mrz1836/notesync/internal/config"
	"github.com/mrz1836/notesync/internal/errors"
	"github.com/mrz1836/notesync/internal/git"
	"github.com/mrz1836/notesync/internal/tui"
)

// commandEnv carries what every subcommand needs once the root command has
// parsed flags and loaded configuration.
type commandEnv struct {
	flags     *GlobalFlags
	cfg       *config.Config
	logger    zerolog.Logger
	gitExec   git.CommandExecutor
	aiExec    ai.CommandExecutor
	logWriter io.Writer
}

// Prompt hooks, replaced in tests.
//
//nolint:gochecknoglobals // test seams for interactive prompts
var (
	terminalCheck = tui.IsInteractive
	inputPrompt   = tui.InputWithValidation
	confirmPrompt = tui.Confirm
)

// repoPath returns the absolute path of the notes repository.
func (env *commandEnv) repoPath() (string, error) {
	dir := env.flags.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	return abs, nil
}

func (env *commandEnv) config() *config.Config {
	if env.cfg == nil {
		env.cfg = config.DefaultConfig()
	}
	return env.cfg
}

func (env *commandEnv) executor() git.CommandExecutor {
	if env.gitExec == nil {
		env.gitExec = git.NewExecExecutor(env.config().Git.Binary)
	}
	return env.gitExec
}

func (env *commandEnv) probe() *git.Probe {
	return git.NewProbe(env.executor(), git.WithProbeLogger(env.logger))
}

func (env *commandEnv) aggregator() *git.StatusAggregator {
	return git.NewStatusAggregator(env.probe(), env.executor(), git.WithStatusLogger(env.logger))
}

func (env *commandEnv) syncOps() *git.SyncOperations {
	return git.NewSyncOperations(env.probe(), env.executor(), git.WithSyncLogger(env.logger))
}

func (env *commandEnv) editor() *ai.Editor {
	opts := []ai.EditorOption{ai.WithEditorLogger(env.logger)}
	if env.aiExec != nil {
		opts = append(opts, ai.WithExecutor(env.aiExec))
	}
	return ai.NewEditor(&env.config().Assistant, opts...)
}

func (env *commandEnv) output(w io.Writer) tui.Output {
	tui.CheckNoColor()
	return tui.NewOutput(w, env.flags.Output)
}

func (env *commandEnv) jsonOutput() bool {
	return env.flags.Output == OutputJSON
}

// reportOutcome prints an operation outcome. A failed outcome yields
// ErrOperationFailed so the process exits non-zero without printing twice.
func (env *commandEnv) reportOutcome(out tui.Output, outcome git.OperationOutcome) error {
	if env.jsonOutput() {
		if err := out.JSON(outcome); err != nil {
			return err
		}
	} else if outcome.Success {
		out.Success(outcome.Message)
	} else {
		out.Error(outcomeErrorFrom(outcome))
	}

	if !outcome.Success {
		return errors.ErrOperationFailed
	}
	return nil
}

// outcomeError is the error form of a failed outcome, for display.
type outcomeError struct {
	msg string
}

func (e outcomeError) Error() string {
	return e.msg
}

func outcomeErrorFrom(outcome git.OperationOutcome) error {
	return outcomeError{msg: outcome.Error}
}
