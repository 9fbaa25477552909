package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockResponse is the scripted reply to one git invocation.
type mockResponse struct {
	result *CommandResult
	err    error
}

// mockExecutor records every invocation and replies from a script keyed by
// the joined argument vector. Unscripted calls succeed with empty output.
type mockExecutor struct {
	mu        sync.Mutex
	calls     [][]string
	responses map[string]mockResponse
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{responses: make(map[string]mockResponse)}
}

func (m *mockExecutor) on(args string, result *CommandResult) *mockExecutor {
	m.responses[args] = mockResponse{result: result}
	return m
}

func (m *mockExecutor) onError(args string, err error) *mockExecutor {
	m.responses[args] = mockResponse{err: err}
	return m
}

func (m *mockExecutor) Execute(_ context.Context, _ string, args ...string) (*CommandResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, args)
	resp, ok := m.responses[strings.Join(args, " ")]
	if !ok {
		return &CommandResult{}, nil
	}
	return resp.result, resp.err
}

func (m *mockExecutor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockExecutor) called(args string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if strings.Join(c, " ") == args {
			return true
		}
	}
	return false
}

// fakeRepo returns a directory that looks like a repository to the probe.
func fakeRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o750))
	return dir
}

func stdout(s string) *CommandResult {
	return &CommandResult{Stdout: s}
}

func failure(code int, stderr string) *CommandResult {
	return &CommandResult{ExitCode: code, Stderr: stderr}
}
