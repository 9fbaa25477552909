package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/notesync/internal/constants"
	"github.com/mrz1836/notesync/internal/errors"
	"github.com/mrz1836/notesync/internal/flock"
	"github.com/mrz1836/notesync/internal/git"
	"github.com/mrz1836/notesync/internal/signal"
	"github.com/mrz1836/notesync/internal/tui"
)

// Sync step names.
const (
	stepCommit = "commit"
	stepPull   = "pull"
	stepPush   = "push"
)

// Reasons sync stops after committing.
const (
	msgSyncNoRemote = "No remote configured; changes were committed locally"
	msgSyncDetached = "Detached HEAD; pull and push skipped. Check out a branch to sync."
)

// syncStep is one operation run by sync.
type syncStep struct {
	Step string `json:"step"`
	git.OperationOutcome
}

// syncReport is the JSON shape of the sync command.
type syncReport struct {
	Success bool       `json:"success"`
	Steps   []syncStep `json:"steps"`
	Skipped string     `json:"skipped,omitempty"`
}

// AddSyncCommand adds the sync command to the root command.
func AddSyncCommand(parent *cobra.Command, env *commandEnv) {
	var message string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Commit, pull and push in one step",
		Long: `Commit all changes, then pull from and push to the remote.

A branch without an upstream is pushed with --set-upstream instead, and the
pull is skipped. Sync stops at the first failing step. Without a remote, or
on a detached HEAD, only the commit runs.

Only one sync may run per repository at a time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := commitMessage(env, message, cmd.Flags().Changed("message"))
			if err != nil {
				return err
			}
			return runSync(cmd.Context(), env, cmd.OutOrStdout(), msg)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	parent.AddCommand(cmd)
}

func runSync(ctx context.Context, env *commandEnv, w io.Writer, message string) error {
	path, err := env.repoPath()
	if err != nil {
		return err
	}

	lock, err := acquireSyncLock(env, path)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	sig := signal.NewHandler(ctx)
	defer sig.Stop()

	report := syncRepository(sig.Context(), env, path, message)
	return reportSync(env, env.output(w), report)
}

// acquireSyncLock takes the per-repository sync lock. Repositories whose
// .git is a file or missing run unlocked.
func acquireSyncLock(env *commandEnv, path string) (*flock.Lock, error) {
	gitDir := filepath.Join(path, constants.GitMetadataDir)
	if info, statErr := os.Stat(gitDir); statErr != nil || !info.IsDir() {
		return nil, nil //nolint:nilnil // no lock to hold
	}

	lockPath := filepath.Join(gitDir, constants.SyncLockFileName)
	lock, err := flock.Acquire(lockPath)
	if err == nil {
		return lock, nil
	}
	if stderrors.Is(err, errors.ErrLockHeld) {
		return nil, err
	}
	env.logger.Debug().Err(err).Str("path", lockPath).Msg("sync lock unavailable, continuing unlocked")
	return nil, nil //nolint:nilnil // run unlocked
}

// syncRepository runs commit, pull and push, stopping at the first failure.
func syncRepository(ctx context.Context, env *commandEnv, path, message string) syncReport {
	ops := env.syncOps()
	report := syncReport{}

	run := func(step string, outcome git.OperationOutcome) bool {
		report.Steps = append(report.Steps, syncStep{Step: step, OperationOutcome: outcome})
		return outcome.Success
	}

	if !run(stepCommit, ops.CommitAll(ctx, path, message)) {
		return report
	}

	status := env.aggregator().GetStatus(ctx, path)
	if !status.HasRemote {
		report.Skipped = msgSyncNoRemote
		report.Success = true
		return report
	}

	if status.CurrentBranch == "" {
		report.Skipped = msgSyncDetached
		report.Success = true
		return report
	}

	if status.Tracking.State == git.TrackingNone {
		report.Success = run(stepPush, ops.PushWithUpstream(ctx, path, status.CurrentBranch))
		return report
	}

	if !run(stepPull, ops.Pull(ctx, path)) {
		return report
	}
	report.Success = run(stepPush, ops.Push(ctx, path))
	return report
}

func reportSync(env *commandEnv, out tui.Output, report syncReport) error {
	if env.jsonOutput() {
		if err := out.JSON(report); err != nil {
			return err
		}
	} else {
		for _, step := range report.Steps {
			if step.Success {
				out.Success(step.Message)
			} else {
				out.Error(outcomeErrorFrom(step.OperationOutcome))
			}
		}
		if report.Skipped != "" {
			out.Warning(report.Skipped)
		}
	}

	if !report.Success {
		return errors.ErrOperationFailed
	}
	return nil
}
