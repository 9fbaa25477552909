// Package git reports the synchronization state of a notes repository and
// performs the mutating operations that keep it backed up, by driving the
// git executable as a subprocess.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/mrz1836/notesync/internal/constants"
)

// CommandResult is the captured outcome of one git invocation.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether git exited with status 0.
func (r *CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Combined returns trimmed stdout and stderr joined by a newline, skipping
// empty streams. Diagnostics for pull and fetch may land on either stream.
func (r *CommandResult) Combined() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(r.Stdout); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(r.Stderr); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// CommandExecutor runs git with fixed arguments in a directory.
//
// Execute returns an error only when the process could not be started or the
// context ended; a non-zero exit is reported through CommandResult.ExitCode.
type CommandExecutor interface {
	Execute(ctx context.Context, dir string, args ...string) (*CommandResult, error)
}

// Compile-time interface check.
var _ CommandExecutor = (*ExecExecutor)(nil)

// ExecExecutor is the os/exec backed CommandExecutor.
type ExecExecutor struct {
	binary string
}

// NewExecExecutor returns an executor for the given git binary. An empty
// binary means "git" on PATH.
func NewExecExecutor(binary string) *ExecExecutor {
	if binary == "" {
		binary = constants.DefaultGitBinary
	}
	return &ExecExecutor{binary: binary}
}

// Execute implements CommandExecutor.
func (e *ExecExecutor) Execute(ctx context.Context, dir string, args ...string) (*CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, e.binary, args...) //#nosec G204 -- argument vectors are fixed per operation
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CommandResult{
		Stdout: decodeOutput(stdout.Bytes()),
		Stderr: decodeOutput(stderr.Bytes()),
	}
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == 0 {
			// Killed by a signal; never report that as success.
			result.ExitCode = -1
		}
		return result, nil
	}

	// *exec.Error (binary missing) or a start failure such as a bad dir.
	return nil, err
}

// decodeOutput converts raw process output to a string, replacing invalid
// UTF-8 sequences with U+FFFD.
func decodeOutput(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(decoded)
}
