package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/notesync/internal/config"
)

// runCLI executes the root command with args against an isolated home
// directory and returns what the command wrote to stdout.
func runCLI(t *testing.T, args []string, opts ...rootOption) (string, error) {
	t.Helper()
	t.Setenv(config.HomeEnvVar, t.TempDir())
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	opts = append([]rootOption{withLogWriter(io.Discard)}, opts...)
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"}, opts...)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// mockTerminal replaces terminalCheck for the duration of the test.
func mockTerminal(t *testing.T, interactive bool) {
	t.Helper()
	original := terminalCheck
	terminalCheck = func() bool { return interactive }
	t.Cleanup(func() { terminalCheck = original })
}

// mockInput replaces the text prompt with a canned answer.
func mockInput(t *testing.T, answer string, err error) *[]string {
	t.Helper()
	var prompts []string
	original := inputPrompt
	inputPrompt = func(prompt, defaultValue string, _ func(string) error) (string, error) {
		prompts = append(prompts, prompt+"|"+defaultValue)
		return answer, err
	}
	t.Cleanup(func() { inputPrompt = original })
	return &prompts
}

// mockConfirm replaces the yes/no prompt with a canned answer.
func mockConfirm(t *testing.T, answer bool, err error) {
	t.Helper()
	original := confirmPrompt
	confirmPrompt = func(string, bool) (bool, error) { return answer, err }
	t.Cleanup(func() { confirmPrompt = original })
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// newNotesRepo creates an initialized repository with a committer identity.
func newNotesRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()

	gitIn(t, dir, "init")
	gitIn(t, dir, "config", "user.email", "test@example.com")
	gitIn(t, dir, "config", "user.name", "Test User")
	gitIn(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

// newBareRemote creates a bare repository and registers it as origin of dir.
// The path is added with raw git since remote add only accepts URLs.
func newBareRemote(t *testing.T, dir string) string {
	t.Helper()
	bare := filepath.Join(t.TempDir(), "remote.git")
	gitIn(t, "", "init", "--bare", bare)
	gitIn(t, dir, "remote", "add", "origin", bare)
	return bare
}

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...) //#nosec G204 -- test helper
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

func writeNote(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
