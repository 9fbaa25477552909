package git

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/notesync/internal/testutil"
)

const revList = "rev-list --left-right --count @{upstream}...HEAD"

// trackedRepoScript scripts a repository on main with an origin remote.
func trackedRepoScript() *mockExecutor {
	return newMockExecutor().
		on("branch --show-current", stdout("main\n")).
		on("remote", stdout("origin\n")).
		on("remote get-url origin", stdout("https://github.com/me/notes.git\n")).
		on("status --porcelain", stdout(" M notes.md\n?? todo.md\nD  old.md\n\n"))
}

func TestGetStatus_NotRepository(t *testing.T) {
	m := newMockExecutor()
	st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), t.TempDir())

	assert.Equal(t, RepositoryStatus{}, st)
	assert.False(t, st.HasUpstreamTracking())
	assert.Equal(t, -1, st.AheadCount())
	assert.Equal(t, -1, st.BehindCount())
	assert.Zero(t, m.callCount())
}

func TestGetStatus_Tracked(t *testing.T) {
	m := trackedRepoScript().on(revList, stdout("3\t5\n"))
	st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), fakeRepo(t))

	assert.True(t, st.IsRepository)
	assert.True(t, st.HasRemote)
	assert.Equal(t, "https://github.com/me/notes.git", st.RemoteURL)
	assert.Equal(t, "main", st.CurrentBranch)
	assert.Equal(t, 3, st.ChangedCount)
	assert.True(t, st.HasUpstreamTracking())
	assert.Equal(t, 5, st.AheadCount(), "second number is ahead")
	assert.Equal(t, 3, st.BehindCount(), "first number is behind")
	assert.Empty(t, st.Error)
}

func TestGetStatus_InSync(t *testing.T) {
	m := trackedRepoScript().on(revList, stdout("0\t0\n"))
	st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), fakeRepo(t))

	assert.True(t, st.InSync())
	assert.Equal(t, 0, st.AheadCount())
	assert.Equal(t, 0, st.BehindCount())
}

func TestGetStatus_TrackingFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m *mockExecutor)
		state  TrackingState
		reason string
	}{
		{
			name: "no upstream configured",
			setup: func(m *mockExecutor) {
				m.on(revList, failure(128, "fatal: no upstream configured for branch 'main'\n"))
			},
			state:  TrackingNone,
			reason: "fatal: no upstream configured for branch 'main'",
		},
		{
			name: "ambiguous argument",
			setup: func(m *mockExecutor) {
				m.on(revList, failure(128, "fatal: ambiguous argument '@{upstream}...HEAD': unknown revision or path not in the working tree."))
			},
			state:  TrackingNone,
			reason: "fatal: ambiguous argument '@{upstream}...HEAD': unknown revision or path not in the working tree.",
		},
		{
			name: "other failure is unknown",
			setup: func(m *mockExecutor) {
				m.on(revList, failure(128, "fatal: could not open object database"))
			},
			state:  TrackingUnknown,
			reason: "fatal: could not open object database",
		},
		{
			name: "unparsable output",
			setup: func(m *mockExecutor) {
				m.on(revList, stdout("garbage\n"))
			},
			state:  TrackingUnknown,
			reason: "unexpected rev-list output: garbage",
		},
		{
			name: "negative count",
			setup: func(m *mockExecutor) {
				m.on(revList, stdout("-1\t2"))
			},
			state:  TrackingUnknown,
			reason: "unexpected rev-list output: -1\t2",
		},
		{
			name: "spawn failure",
			setup: func(m *mockExecutor) {
				m.onError(revList, testutil.ErrMockResource)
			},
			state:  TrackingUnknown,
			reason: "fork/exec: resource temporarily unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := trackedRepoScript()
			tt.setup(m)

			st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), fakeRepo(t))

			assert.Equal(t, tt.state, st.Tracking.State)
			assert.Equal(t, tt.reason, st.Tracking.Reason)
			assert.False(t, st.HasUpstreamTracking())
			assert.Equal(t, -1, st.AheadCount())
			assert.Equal(t, -1, st.BehindCount())
			assert.Empty(t, st.Error, "tracking failures degrade the field only")
			assert.Equal(t, 3, st.ChangedCount, "earlier fields survive")
		})
	}
}

func TestGetStatus_NoRemoteSkipsTracking(t *testing.T) {
	m := newMockExecutor().
		on("branch --show-current", stdout("main\n")).
		on("remote", stdout("\n"))

	st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), fakeRepo(t))

	assert.False(t, st.HasRemote)
	assert.Empty(t, st.RemoteURL)
	assert.Equal(t, TrackingNone, st.Tracking.State)
	assert.False(t, m.called("remote get-url origin"))
	assert.False(t, m.called(revList))
}

func TestGetStatus_DetachedHeadSkipsTracking(t *testing.T) {
	m := trackedRepoScript().on("branch --show-current", stdout("\n"))

	st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), fakeRepo(t))

	assert.Empty(t, st.CurrentBranch)
	assert.True(t, st.HasRemote)
	assert.False(t, m.called(revList))
}

func TestGetStatus_PerFieldDegradation(t *testing.T) {
	m := newMockExecutor().
		on("branch --show-current", failure(128, "fatal: not a git repository")).
		on("remote", stdout("origin\n")).
		on("remote get-url origin", failure(2, "error: No such remote 'origin'")).
		on("status --porcelain", failure(128, "fatal: index file corrupt"))

	st := NewStatusAggregator(NewProbe(m), m).GetStatus(context.Background(), fakeRepo(t))

	assert.True(t, st.IsRepository)
	assert.Empty(t, st.CurrentBranch)
	assert.True(t, st.HasRemote)
	assert.Empty(t, st.RemoteURL)
	assert.Zero(t, st.ChangedCount)
	assert.Empty(t, st.Error)
	assert.False(t, m.called(revList), "no branch means no tracking query")
}

func TestGetStatus_CanceledContext(t *testing.T) {
	m := trackedRepoScript()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewStatusAggregator(NewProbe(m), m).GetStatus(ctx, fakeRepo(t))

	assert.True(t, st.IsRepository)
	assert.Equal(t, "status query interrupted: context canceled", st.Error)
	assert.Zero(t, m.callCount())
}

func TestStatusAggregator_RemoteURL(t *testing.T) {
	m := newMockExecutor().on("remote get-url origin", stdout("git@github.com:me/notes.git\n"))
	url, ok := NewStatusAggregator(NewProbe(m), m).RemoteURL(context.Background(), fakeRepo(t))
	assert.True(t, ok)
	assert.Equal(t, "git@github.com:me/notes.git", url)

	m = newMockExecutor().on("remote get-url origin", failure(2, "error: No such remote 'origin'"))
	_, ok = NewStatusAggregator(NewProbe(m), m).RemoteURL(context.Background(), fakeRepo(t))
	assert.False(t, ok)
}

func TestParseLeftRight(t *testing.T) {
	tests := []struct {
		in     string
		behind int
		ahead  int
		ok     bool
	}{
		{"0\t0\n", 0, 0, true},
		{"2\t7", 2, 7, true},
		{"  4   1  ", 4, 1, true},
		{"4", 0, 0, false},
		{"4\t1\t9", 0, 0, false},
		{"a\tb", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		behind, ahead, ok := parseLeftRight(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.behind, behind, tt.in)
		assert.Equal(t, tt.ahead, ahead, tt.in)
	}
}

func TestRepositoryStatus_MarshalJSON(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		data, err := json.Marshal(RepositoryStatus{})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"isRepository": false,
			"hasRemote": false,
			"remoteUrl": null,
			"currentBranch": null,
			"hasUpstreamTracking": false,
			"aheadCount": -1,
			"behindCount": -1,
			"changedCount": 0,
			"error": null,
			"tracking": "none"
		}`, string(data))
	})

	t.Run("tracked", func(t *testing.T) {
		st := RepositoryStatus{
			IsRepository:  true,
			HasRemote:     true,
			RemoteURL:     "https://github.com/me/notes.git",
			CurrentBranch: "main",
			Tracking:      Tracked(1, 0),
			ChangedCount:  2,
		}
		data, err := json.Marshal(st)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"isRepository": true,
			"hasRemote": true,
			"remoteUrl": "https://github.com/me/notes.git",
			"currentBranch": "main",
			"hasUpstreamTracking": true,
			"aheadCount": 1,
			"behindCount": 0,
			"changedCount": 2,
			"error": null,
			"tracking": "tracked"
		}`, string(data))
	})

	t.Run("unknown keeps legacy sentinel", func(t *testing.T) {
		st := RepositoryStatus{
			IsRepository:  true,
			HasRemote:     true,
			CurrentBranch: "main",
			Tracking:      Tracking{State: TrackingUnknown, Ahead: 4, Reason: "fatal: bad object"},
		}
		data, err := json.Marshal(st)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "unknown", decoded["tracking"])
		assert.Equal(t, "fatal: bad object", decoded["trackingReason"])
		assert.InDelta(t, -1, decoded["aheadCount"], 0)
		assert.Equal(t, false, decoded["hasUpstreamTracking"])
	})
}
