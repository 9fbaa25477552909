package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/notesync/internal/tui"
)

// AddCommitCommand adds the commit command to the root command.
func AddCommitCommand(parent *cobra.Command, env *commandEnv) {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Stage and commit every change in the notes folder",
		Long: `Stage all changes, including new and deleted files, and commit them.

Without -m you are asked for a message on a terminal. Non-interactive runs
use git.default_commit_message from the configuration.

Examples:
  notesync commit -m "Meeting notes"
  notesync commit --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := commitMessage(env, message, cmd.Flags().Changed("message"))
			if err != nil {
				return err
			}
			return runCommit(cmd.Context(), env, cmd.OutOrStdout(), msg)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	parent.AddCommand(cmd)
}

// commitMessage picks the message for commit and sync. An explicit flag
// wins even when empty, so validation reports it.
func commitMessage(env *commandEnv, flagValue string, flagSet bool) (string, error) {
	if flagSet {
		return flagValue, nil
	}

	fallback := env.config().Git.DefaultCommitMessage
	if env.jsonOutput() || !terminalCheck() {
		return fallback, nil
	}

	return inputPrompt("Commit message", fallback, tui.NotBlank)
}

func runCommit(ctx context.Context, env *commandEnv, w io.Writer, message string) error {
	path, err := env.repoPath()
	if err != nil {
		return err
	}

	outcome := env.syncOps().CommitAll(ctx, path, message)
	return env.reportOutcome(env.output(w), outcome)
}
