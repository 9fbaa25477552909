package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/notesync/internal/git"
	"github.com/mrz1836/notesync/internal/signal"
)

// AddFetchCommand adds the fetch command to the root command.
func AddFetchCommand(parent *cobra.Command, env *commandEnv) {
	parent.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Download remote changes without merging them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransfer(cmd.Context(), env, cmd.OutOrStdout(), func(ctx context.Context, ops *git.SyncOperations, path string) git.OperationOutcome {
				return ops.Fetch(ctx, path)
			})
		},
	})
}

// AddPullCommand adds the pull command to the root command.
func AddPullCommand(parent *cobra.Command, env *commandEnv) {
	parent.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Fetch and merge changes from the remote",
		Long: `Fetch and merge the upstream branch into the current branch.

Merge conflicts, authentication problems, network failures and diverged
histories are reported with a short explanation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransfer(cmd.Context(), env, cmd.OutOrStdout(), func(ctx context.Context, ops *git.SyncOperations, path string) git.OperationOutcome {
				return ops.Pull(ctx, path)
			})
		},
	})
}

// AddPushCommand adds the push command to the root command.
func AddPushCommand(parent *cobra.Command, env *commandEnv) {
	var (
		setUpstream bool
		branch      string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload local commits to the remote",
		Long: `Push the current branch to its upstream.

Use --set-upstream for the first push of a branch. The branch defaults to
the current one.

Examples:
  notesync push
  notesync push --set-upstream
  notesync push --set-upstream --branch main`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !setUpstream {
				return runTransfer(cmd.Context(), env, cmd.OutOrStdout(), func(ctx context.Context, ops *git.SyncOperations, path string) git.OperationOutcome {
					return ops.Push(ctx, path)
				})
			}
			return runTransfer(cmd.Context(), env, cmd.OutOrStdout(), func(ctx context.Context, ops *git.SyncOperations, path string) git.OperationOutcome {
				target := branch
				if target == "" {
					target = env.aggregator().GetStatus(ctx, path).CurrentBranch
				}
				return ops.PushWithUpstream(ctx, path, target)
			})
		},
	}

	cmd.Flags().BoolVarP(&setUpstream, "set-upstream", "u", false, "set the upstream branch while pushing")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "branch to push with --set-upstream (default: current)")
	parent.AddCommand(cmd)
}

// transferFunc runs one network operation against the repository.
type transferFunc func(ctx context.Context, ops *git.SyncOperations, path string) git.OperationOutcome

// runTransfer runs op with Ctrl+C wired to cancel the git process.
func runTransfer(ctx context.Context, env *commandEnv, w io.Writer, op transferFunc) error {
	path, err := env.repoPath()
	if err != nil {
		return err
	}

	sig := signal.NewHandler(ctx)
	defer sig.Stop()

	outcome := op(sig.Context(), env.syncOps(), path)
	return env.reportOutcome(env.output(w), outcome)
}
