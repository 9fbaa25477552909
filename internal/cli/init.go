package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/notesync/internal/errors"
	"github.com/mrz1836/notesync/internal/git"
	"github.com/mrz1836/notesync/internal/tui"
)

// Init messages.
const (
	msgInitialized    = "Initialized git repository"
	msgAlreadyTracked = "Already a git repository"
	msgInitDeclined   = "Initialization skipped"
)

// initResult is the JSON shape of the init command.
type initResult struct {
	Success bool   `json:"success"`
	Created bool   `json:"created"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AddInitCommand adds the init command to the root command.
func AddInitCommand(parent *cobra.Command, env *commandEnv) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Start tracking the notes folder with git",
		Long: `Run 'git init' in the notes folder. Nothing happens when the folder
is already a repository.

On a terminal you are asked to confirm first; pass --yes to skip the
question. Non-interactive runs never prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), env, cmd.OutOrStdout(), yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	parent.AddCommand(cmd)
}

func runInit(ctx context.Context, env *commandEnv, w io.Writer, yes bool) error {
	path, err := env.repoPath()
	if err != nil {
		return err
	}

	out := env.output(w)
	probe := env.probe()

	if probe.IsRepository(path) {
		return reportInit(env, out, initResult{Success: true, Path: path, Message: msgAlreadyTracked})
	}

	if !yes && !env.jsonOutput() && terminalCheck() {
		confirmed, promptErr := confirmPrompt(fmt.Sprintf("Initialize a git repository in %s?", path), true)
		if promptErr != nil {
			return promptErr
		}
		if !confirmed {
			return reportInit(env, out, initResult{Success: true, Path: path, Message: msgInitDeclined})
		}
	}

	if err := probe.InitRepository(ctx, path); err != nil {
		env.logger.Error().Err(err).Str("path", path).Msg("git init failed")
		if env.jsonOutput() {
			_ = reportInit(env, out, initResult{Path: path, Error: err.Error()})
			return errors.ErrJSONErrorOutput
		}
		if stderrors.Is(err, git.ErrGitUnavailable) {
			return err
		}
		out.Error(err)
		return errors.ErrOperationFailed
	}

	return reportInit(env, out, initResult{Success: true, Created: true, Path: path, Message: msgInitialized})
}

func reportInit(env *commandEnv, out tui.Output, res initResult) error {
	if env.jsonOutput() {
		return out.JSON(res)
	}
	if res.Created {
		out.Success(res.Message + " in " + res.Path)
	} else {
		out.Info(res.Message)
	}
	return nil
}
