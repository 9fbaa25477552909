package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake secrets are assembled at runtime to keep secret scanners quiet.
func fakeAnthropicKey() string { return "sk-" + "ant-api03-test-key-do-not-use" }
func fakeGitHubPAT() string    { return "ghp_" + "xxxxxxxxxxTESTONLYxxxxxxxxxx" }
func fakeFineGrained() string  { return "github_" + "pat_TESTONLYxxxxxxxxxxxxxxxxxx" }
func fakePassword() string     { return "testonly" + "password123" }

func TestFilterSensitiveValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "url with user and token",
			input:    "https://me:" + fakeGitHubPAT() + "@github.com/me/notes.git",
			expected: "https://[REDACTED]@github.com/me/notes.git",
		},
		{
			name:     "url with token only",
			input:    "fatal: unable to access 'https://" + fakeGitHubPAT() + "@github.com/me/notes.git/'",
			expected: "fatal: unable to access 'https://[REDACTED]@github.com/me/notes.git/'",
		},
		{
			name:     "plain https url untouched",
			input:    "https://github.com/me/notes.git",
			expected: "https://github.com/me/notes.git",
		},
		{
			name:     "ssh url untouched",
			input:    "git@github.com:me/notes.git",
			expected: "git@github.com:me/notes.git",
		},
		{
			name:     "anthropic key",
			input:    "key " + fakeAnthropicKey(),
			expected: "key [REDACTED]",
		},
		{
			name:     "fine grained pat",
			input:    fakeFineGrained(),
			expected: "[REDACTED]",
		},
		{
			name:     "password assignment",
			input:    "password=" + fakePassword(),
			expected: "[REDACTED]",
		},
		{
			name:     "ordinary git output",
			input:    "Everything up-to-date",
			expected: "Everything up-to-date",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FilterSensitiveValue(tc.input))
		})
	}
}

func TestContainsSensitiveData(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsSensitiveData("https://u:p@example.com/repo.git"))
	assert.True(t, ContainsSensitiveData("token "+fakeGitHubPAT()))
	assert.False(t, ContainsSensitiveData("Already up to date."))
	assert.False(t, ContainsSensitiveData(""))
}

func TestSafeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, SafeValue("github_token", "anything"))
	assert.Equal(t, RedactedValue, SafeValue("Password", "anything"))
	assert.Equal(t, "https://[REDACTED]@host/r.git", SafeValue("url", "https://a:b@host/r.git"))
	assert.Equal(t, "main", SafeValue("branch", "main"))
}

func TestSensitiveDataHook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("pushing to https://me:" + fakeGitHubPAT() + "@github.com/me/notes.git")
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Info().Msg("pushed")
	assert.NotContains(t, buf.String(), "contains_filtered_data")
}

func TestFilteringWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)
	logger := zerolog.New(fw)

	logger.Info().Str("stderr", "remote: invalid token "+fakeGitHubPAT()).Msg("git push failed")

	out := buf.String()
	assert.Contains(t, out, "git push failed")
	assert.Contains(t, out, RedactedValue)
	assert.NotContains(t, out, fakeGitHubPAT())
}

func TestFilteringWriter_PreservesWriteLength(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)

	input := "url https://me:" + fakePassword() + "@example.com/notes.git"
	n, err := fw.Write([]byte(input))

	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.NotContains(t, buf.String(), fakePassword())
}

func TestNewRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "notesync.log")
	w, err := NewRotatingFile(FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	require.NoError(t, err)

	_, err = w.Write([]byte("key " + fakeAnthropicKey() + "\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "key [REDACTED]\n", string(data))
}

func TestNewRotatingFile_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewRotatingFile(FileOptions{})
	require.Error(t, err)
}
