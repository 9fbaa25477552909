package git

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrorTypeNone, "none"},
		{ErrorTypeUnknown, "unknown"},
		{ErrorTypeAuth, "authentication"},
		{ErrorTypeNetwork, "network"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDiverged, "diverged"},
		{ErrorTypeConflict, "conflict"},
		{ErrorTypeAlreadyExists, "already_exists"},
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotRepository, "not_repository"},
		{ErrorTypeUnavailable, "unavailable"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestClassifyPull(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kind     ErrorType
		expected string
	}{
		{
			name:     "merge conflict",
			text:     "Auto-merging notes.md\nCONFLICT (content): Merge conflict in notes.md\nAutomatic merge failed; fix conflicts and then commit the result.\n",
			kind:     ErrorTypeConflict,
			expected: MsgConflict,
		},
		{
			name:     "conflict wins over auth",
			text:     "CONFLICT (content): Merge conflict in a.md\ngit@github.com: Permission denied (publickey).",
			kind:     ErrorTypeConflict,
			expected: MsgConflict,
		},
		{
			name:     "ssh key rejected",
			text:     "git@github.com: Permission denied (publickey).\nfatal: Could not read from remote repository.",
			kind:     ErrorTypeAuth,
			expected: MsgAuth,
		},
		{
			name:     "auth wins over network",
			text:     "fatal: Authentication failed for 'https://github.com/me/notes.git/'\nfailed to connect",
			kind:     ErrorTypeAuth,
			expected: MsgAuth,
		},
		{
			name:     "host resolution",
			text:     "fatal: unable to access 'https://github.com/me/notes.git/': Could not resolve host: github.com",
			kind:     ErrorTypeNetwork,
			expected: MsgNetwork,
		},
		{
			name:     "ssh host resolution",
			text:     "ssh: Could not resolve hostname github.com: Name or service not known",
			kind:     ErrorTypeNetwork,
			expected: MsgNetwork,
		},
		{
			name:     "divergent branches",
			text:     "hint: You have divergent branches and need to specify how to reconcile them.\nfatal: Need to specify how to reconcile divergent branches.",
			kind:     ErrorTypeDiverged,
			expected: MsgDiverged,
		},
		{
			name:     "not possible to fast-forward",
			text:     "fatal: Not possible to fast-forward, aborting.",
			kind:     ErrorTypeDiverged,
			expected: MsgDiverged,
		},
		{
			name:     "not found is not a pull category",
			text:     "  ERROR: Repository not found.  \n",
			kind:     ErrorTypeUnknown,
			expected: "ERROR: Repository not found.",
		},
		{
			name:     "passthrough trims",
			text:     "\n  fatal: refusing to merge unrelated histories \n",
			kind:     ErrorTypeUnknown,
			expected: "fatal: refusing to merge unrelated histories",
		},
	}

	c := NewErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, msg := c.ClassifyPullKind(tt.text)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.expected, msg)
			assert.Equal(t, tt.expected, ClassifyPull(tt.text))
		})
	}
}

func TestClassifyPush(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kind     ErrorType
		expected string
	}{
		{
			name:     "resolve host",
			text:     "fatal: Could not resolve host: github.com",
			kind:     ErrorTypeNetwork,
			expected: MsgNetwork,
		},
		{
			name:     "publickey",
			text:     "git@github.com: Permission denied (publickey).",
			kind:     ErrorTypeAuth,
			expected: MsgAuth,
		},
		{
			name:     "auth wins over not found",
			text:     "remote: Repository not found.\nfatal: Authentication failed for 'https://github.com/me/x.git/'",
			kind:     ErrorTypeAuth,
			expected: MsgAuth,
		},
		{
			name:     "repository not found",
			text:     "remote: Repository not found.\nfatal: repository 'https://github.com/me/x.git/' not found",
			kind:     ErrorTypeNotFound,
			expected: MsgNotFound,
		},
		{
			name:     "does not exist",
			text:     "fatal: '/srv/git/notes.git' does not appear to be a git repository\nfatal: remote path does not exist",
			kind:     ErrorTypeNotFound,
			expected: MsgNotFound,
		},
		{
			name:     "not found wins over network",
			text:     "repository not found; connection refused",
			kind:     ErrorTypeNotFound,
			expected: MsgNotFound,
		},
		{
			name:     "rejected push passes through",
			text:     " ! [rejected]        main -> main (fetch first)\nerror: failed to push some refs\n",
			kind:     ErrorTypeUnknown,
			expected: "! [rejected]        main -> main (fetch first)\nerror: failed to push some refs",
		},
	}

	c := NewErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, msg := c.ClassifyPushKind(tt.text)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.expected, msg)
			assert.Equal(t, tt.expected, ClassifyPush(tt.text))
		})
	}
}

func TestClassify_EmptyText(t *testing.T) {
	kind, msg := NewErrorClassifier().ClassifyPullKind("")
	assert.Equal(t, ErrorTypeUnknown, kind)
	assert.Empty(t, msg)
}

func TestPatternMatcher(t *testing.T) {
	m := NewPatternMatcher("could not resolve host", "connection refused")

	assert.True(t, m.Matches("fatal: COULD NOT RESOLVE HOST: example.com"))
	assert.True(t, m.MatchesLower("connection refused"))
	assert.False(t, m.MatchesLower("CONNECTION REFUSED"), "MatchesLower expects lowercase input")
	assert.False(t, m.Matches("everything up-to-date"))
}

func TestErrorType_MarshalText(t *testing.T) {
	data, err := json.Marshal(map[string]ErrorType{"kind": ErrorTypeAlreadyExists})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"already_exists"}`, string(data))
}

func TestErrorType_UnmarshalText(t *testing.T) {
	var outcome OperationOutcome
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"errorKind":"diverged"}`), &outcome))
	assert.Equal(t, ErrorTypeDiverged, outcome.Kind)

	require.NoError(t, json.Unmarshal([]byte(`{"errorKind":"something_new"}`), &outcome))
	assert.Equal(t, ErrorTypeUnknown, outcome.Kind)
}
