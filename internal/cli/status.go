package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/notesync/internal/ctxutil"
	"github.com/mrz1836/notesync/internal/tui"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(parent *cobra.Command, env *commandEnv) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the sync state of the notes repository",
		Long: `Show whether the folder is a git repository, its branch and remote,
how many commits it is ahead of or behind its upstream, and how many files
have uncommitted changes.

A status query never fails: problems are reported inside the snapshot.

Examples:
  notesync status
  notesync status -C ~/notes --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), env, cmd.OutOrStdout())
		},
	}
	parent.AddCommand(cmd)
}

func runStatus(ctx context.Context, env *commandEnv, w io.Writer) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	path, err := env.repoPath()
	if err != nil {
		return err
	}

	status := env.aggregator().GetStatus(ctx, path)

	if env.jsonOutput() {
		return env.output(w).JSON(status)
	}

	tui.CheckNoColor()
	_, _ = fmt.Fprint(w, tui.RenderStatus(status))
	return nil
}
