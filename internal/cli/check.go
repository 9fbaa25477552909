package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/notesync/internal/errors"
)

// checkResult reports which external tools can be started.
type checkResult struct {
	Git       bool `json:"git"`
	Assistant bool `json:"assistant"`
}

// AddCheckCommand adds the check command to the root command.
func AddCheckCommand(parent *cobra.Command, env *commandEnv) {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that git and the editing assistant are installed",
		Long: `Check that the git executable answers a version query, and report
whether the Claude Code CLI used by 'notesync edit' is available.

Exit codes:
  0: git is available
  1: git is missing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), env, cmd.OutOrStdout())
		},
	}
	parent.AddCommand(cmd)
}

func runCheck(ctx context.Context, env *commandEnv, w io.Writer) error {
	probe, editor := env.probe(), env.editor()

	// Each goroutine writes its own field.
	var result checkResult
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Git = probe.IsAvailable(gCtx)
		return nil
	})
	g.Go(func() error {
		result.Assistant = editor.IsAvailable(gCtx)
		return nil
	})
	_ = g.Wait()

	out := env.output(w)
	if env.jsonOutput() {
		if err := out.JSON(result); err != nil {
			return err
		}
	} else {
		if result.Git {
			out.Success("git is available")
		} else {
			out.Error(errors.ErrGitUnavailable)
		}
		if result.Assistant {
			out.Success("Claude Code is available")
		} else {
			out.Warning("Claude Code is not installed; 'notesync edit' is disabled")
		}
	}

	if !result.Git {
		return errors.ErrOperationFailed
	}
	return nil
}
