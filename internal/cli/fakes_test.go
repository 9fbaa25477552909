package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mrz1836/notesync/internal/git"
)

// fakeGit answers git invocations from a table keyed by the joined args.
type fakeGit struct {
	results map[string]*git.CommandResult
	err     error
	calls   []string
}

func (f *fakeGit) Execute(_ context.Context, _ string, args ...string) (*git.CommandResult, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.results[key]; ok {
		return res, nil
	}
	return &git.CommandResult{ExitCode: 1, Stderr: "unexpected call: " + key}, nil
}

// exitError stands in for *exec.ExitError.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) ExitCode() int {
	return e.code
}

// fakeAssistant records the assistant command and returns canned output.
type fakeAssistant struct {
	stdout string
	stderr string
	err    error
	cmds   []*exec.Cmd
}

func (f *fakeAssistant) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	f.cmds = append(f.cmds, cmd)
	return []byte(f.stdout), []byte(f.stderr), f.err
}
