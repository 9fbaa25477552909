package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/notesync/internal/constants"
	"github.com/mrz1836/notesync/internal/ctxutil"
	"github.com/mrz1836/notesync/internal/logging"
)

// noUpstreamPatterns match rev-list failures that mean the branch simply has
// no upstream configured.
//
//nolint:gochecknoglobals // Package-level immutable pattern matcher
var noUpstreamPatterns = NewPatternMatcher(
	"no upstream configured",
	"no upstream branch",
	"unknown revision",
	"ambiguous argument",
	"bad revision",
)

// StatusAggregator assembles a RepositoryStatus from a fixed sequence of
// independent git queries.
type StatusAggregator struct {
	repos  RepositoryChecker
	exec   CommandExecutor
	logger zerolog.Logger
}

// StatusOption configures a StatusAggregator.
type StatusOption func(*StatusAggregator)

// WithStatusLogger sets the logger for status queries.
func WithStatusLogger(logger zerolog.Logger) StatusOption {
	return func(a *StatusAggregator) {
		a.logger = logger
	}
}

// NewStatusAggregator creates a StatusAggregator.
func NewStatusAggregator(repos RepositoryChecker, exec CommandExecutor, opts ...StatusOption) *StatusAggregator {
	a := &StatusAggregator{repos: repos, exec: exec, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// statusStep fills some fields of the snapshot. A step degrades its own
// fields on failure and never stops the ones after it.
type statusStep func(ctx context.Context, path string, st *RepositoryStatus)

// GetStatus returns the snapshot for path. It never fails: a non-repository
// yields the zero snapshot, and each query that fails leaves its own fields at
// their defaults. Error is set only when ctx ends mid-collection.
func (a *StatusAggregator) GetStatus(ctx context.Context, path string) RepositoryStatus {
	if !a.repos.IsRepository(path) {
		return RepositoryStatus{}
	}

	st := RepositoryStatus{IsRepository: true}
	steps := []statusStep{
		a.fillBranch,
		a.fillRemote,
		a.fillChanges,
		a.fillTracking,
	}
	for _, step := range steps {
		if err := ctxutil.Interrupted(ctx, "status query"); err != nil {
			st.Error = err.Error()
			return st
		}
		step(ctx, path, &st)
	}
	if err := ctxutil.Interrupted(ctx, "status query"); err != nil {
		st.Error = err.Error()
	}

	a.logger.Debug().
		Str("path", path).
		Str("branch", st.CurrentBranch).
		Bool("has_remote", st.HasRemote).
		Int("changed", st.ChangedCount).
		Stringer("tracking", st.Tracking.State).
		Msg("status collected")
	return st
}

// RemoteURL returns the URL of origin, if configured.
func (a *StatusAggregator) RemoteURL(ctx context.Context, path string) (string, bool) {
	out, ok := a.query(ctx, path, "remote", "get-url", constants.DefaultRemote)
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

func (a *StatusAggregator) fillBranch(ctx context.Context, path string, st *RepositoryStatus) {
	// Empty output means detached HEAD or an unborn branch.
	if out, ok := a.query(ctx, path, "branch", "--show-current"); ok {
		st.CurrentBranch = out
	}
}

func (a *StatusAggregator) fillRemote(ctx context.Context, path string, st *RepositoryStatus) {
	out, ok := a.query(ctx, path, "remote")
	st.HasRemote = ok && out != ""
	if !st.HasRemote {
		return
	}
	if url, found := a.RemoteURL(ctx, path); found {
		st.RemoteURL = url
	}
}

func (a *StatusAggregator) fillChanges(ctx context.Context, path string, st *RepositoryStatus) {
	res, err := a.exec.Execute(ctx, path, "status", "--porcelain")
	if err != nil || !res.Success() {
		a.logFailure("status", res, err)
		return
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			st.ChangedCount++
		}
	}
}

func (a *StatusAggregator) fillTracking(ctx context.Context, path string, st *RepositoryStatus) {
	if !st.HasRemote || st.CurrentBranch == "" {
		return
	}

	res, err := a.exec.Execute(ctx, path, "rev-list", "--left-right", "--count", "@{upstream}...HEAD")
	if err != nil {
		st.Tracking = Tracking{State: TrackingUnknown, Reason: err.Error()}
		return
	}
	if !res.Success() {
		st.Tracking = trackingFromFailure(res)
		return
	}

	behind, ahead, ok := parseLeftRight(res.Stdout)
	if !ok {
		st.Tracking = Tracking{
			State:  TrackingUnknown,
			Reason: "unexpected rev-list output: " + strings.TrimSpace(res.Stdout),
		}
		return
	}
	st.Tracking = Tracked(ahead, behind)
}

// trackingFromFailure separates "no upstream" from other rev-list failures.
func trackingFromFailure(res *CommandResult) Tracking {
	text := res.Combined()
	if text == "" {
		text = exitCodeMessage([]string{"rev-list"}, res.ExitCode)
	}
	if noUpstreamPatterns.Matches(text) {
		return Tracking{State: TrackingNone, Reason: text}
	}
	return Tracking{State: TrackingUnknown, Reason: text}
}

// parseLeftRight parses "behind<TAB>ahead" from rev-list --left-right --count.
// The left side is the upstream, so the first number is commits behind.
func parseLeftRight(out string) (behind, ahead int, ok bool) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, false
	}
	behind, err := strconv.Atoi(fields[0])
	if err != nil || behind < 0 {
		return 0, 0, false
	}
	ahead, err = strconv.Atoi(fields[1])
	if err != nil || ahead < 0 {
		return 0, 0, false
	}
	return behind, ahead, true
}

// query runs a read-only git command and returns its trimmed stdout.
func (a *StatusAggregator) query(ctx context.Context, path string, args ...string) (string, bool) {
	res, err := a.exec.Execute(ctx, path, args...)
	if err != nil || !res.Success() {
		a.logFailure(args[0], res, err)
		return "", false
	}
	return strings.TrimSpace(res.Stdout), true
}

func (a *StatusAggregator) logFailure(verb string, res *CommandResult, err error) {
	event := a.logger.Debug().Str("git", verb)
	if err != nil {
		event.Err(err).Msg("status query could not run")
		return
	}
	event.Int("exit_code", res.ExitCode).
		Str("stderr", logging.FilterSensitiveValue(strings.TrimSpace(res.Stderr))).
		Msg("status query failed")
}
