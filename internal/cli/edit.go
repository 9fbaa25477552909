package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/notesync/internal/ai"
	"github.com/mrz1836/notesync/internal/errors"
	"github.com/mrz1836/notesync/internal/signal"
	"github.com/mrz1836/notesync/internal/tui"
)

// AddEditCommand adds the edit command to the root command.
func AddEditCommand(parent *cobra.Command, env *commandEnv) {
	cmd := &cobra.Command{
		Use:   "edit <note> <prompt...>",
		Short: "Ask Claude Code to edit a note",
		Long: `Ask the Claude Code CLI to edit a note in place. The note path is
relative to the notes repository. The remaining arguments form the request.

The assistant may only use the tools listed in assistant.allowed_tools.

Examples:
  notesync edit todo.md "sort the list by due date"
  notesync edit journal/2026-10.md summarize this month in three bullets`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), env, cmd.OutOrStdout(), args[0], strings.Join(args[1:], " "))
		},
	}
	parent.AddCommand(cmd)
}

func runEdit(ctx context.Context, env *commandEnv, w io.Writer, note, prompt string) error {
	repo, err := env.repoPath()
	if err != nil {
		return err
	}
	if !filepath.IsAbs(note) {
		note = filepath.Join(repo, note)
	}

	sig := signal.NewHandler(ctx)
	defer sig.Stop()

	result := env.editor().EditNote(sig.Context(), note, prompt)
	return reportEdit(env, env.output(w), w, result)
}

func reportEdit(env *commandEnv, out tui.Output, w io.Writer, result ai.EditResult) error {
	if env.jsonOutput() {
		if err := out.JSON(result); err != nil {
			return err
		}
	} else {
		if strings.TrimSpace(result.Output) != "" {
			_, _ = fmt.Fprint(w, tui.RenderMarkdown(result.Output))
		}
		if result.Success {
			out.Success("Note edited")
		} else {
			out.Error(outcomeError{msg: result.Error})
		}
		if result.SessionURL != "" {
			out.Info("Session: " + result.SessionURL)
		}
	}

	if !result.Success {
		return errors.ErrOperationFailed
	}
	return nil
}
