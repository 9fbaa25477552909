package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/notesync/internal/constants"
	"github.com/mrz1836/notesync/internal/logging"
)

// Outcome messages.
const (
	MsgNotRepository   = "Not a git repository"
	MsgCommitted       = "Changes committed"
	MsgNothingToCommit = "Nothing to commit"
	MsgFetched         = "Fetched latest changes"
	MsgAlreadyUpToDate = "Already up to date"
	MsgPulled          = "Pulled latest changes"
	MsgPushed          = "Pushed successfully"
	MsgRemoteAdded     = "Remote 'origin' added"
	MsgRemoteExists    = "Remote 'origin' already exists"
	MsgEmptyCommitMsg  = "Commit message cannot be empty"
	MsgEmptyBranch     = "Branch name cannot be empty"
	msgPushedUpstream  = "Pushed and set upstream to %s/%s"
)

//nolint:gochecknoglobals // Package-level immutable pattern matchers
var (
	nothingToCommitPatterns = NewPatternMatcher("nothing to commit")
	upToDatePatterns        = NewPatternMatcher("already up to date", "already up-to-date")
	remoteExistsPatterns    = NewPatternMatcher("already exists")
)

// SyncOperations performs the mutating git actions for a notes repository.
// Every call is synchronous, spawns at most two processes and returns an
// OperationOutcome instead of an error.
type SyncOperations struct {
	repos      RepositoryChecker
	exec       CommandExecutor
	classifier *ErrorClassifier
	logger     zerolog.Logger
}

// SyncOption configures SyncOperations.
type SyncOption func(*SyncOperations)

// WithSyncLogger sets the logger for sync operations.
func WithSyncLogger(logger zerolog.Logger) SyncOption {
	return func(s *SyncOperations) {
		s.logger = logger
	}
}

// NewSyncOperations creates SyncOperations.
func NewSyncOperations(repos RepositoryChecker, exec CommandExecutor, opts ...SyncOption) *SyncOperations {
	s := &SyncOperations{
		repos:      repos,
		exec:       exec,
		classifier: defaultClassifier,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CommitAll stages every change (including deletions and new files) and
// commits it. A clean tree is a success with MsgNothingToCommit.
func (s *SyncOperations) CommitAll(ctx context.Context, path, message string) OperationOutcome {
	return s.operation("commit", path, func(log zerolog.Logger) OperationOutcome {
		if strings.TrimSpace(message) == "" {
			return failed(ErrorTypeValidation, MsgEmptyCommitMsg)
		}

		res, out := s.run(ctx, log, path, "stage changes", "add", "-A")
		if out != nil {
			return *out
		}
		if !res.Success() {
			return failed(ErrorTypeUnknown, stagingDiagnostic(res))
		}

		res, out = s.run(ctx, log, path, "commit", "commit", "-m", message)
		if out != nil {
			return *out
		}
		if res.Success() {
			return succeeded(MsgCommitted)
		}
		if nothingToCommitPatterns.Matches(res.Stdout + "\n" + res.Stderr) {
			return succeeded(MsgNothingToCommit)
		}
		return failed(ErrorTypeUnknown, diagnostic(res, "commit"))
	})
}

// Fetch updates remote-tracking refs without touching the working tree.
func (s *SyncOperations) Fetch(ctx context.Context, path string) OperationOutcome {
	return s.operation("fetch", path, func(log zerolog.Logger) OperationOutcome {
		res, out := s.run(ctx, log, path, "fetch", "fetch", "--quiet")
		if out != nil {
			return *out
		}
		if res.Success() {
			return succeeded(MsgFetched)
		}
		return s.pullFailure(res, "fetch")
	})
}

// Pull fetches and integrates the upstream branch.
func (s *SyncOperations) Pull(ctx context.Context, path string) OperationOutcome {
	return s.operation("pull", path, func(log zerolog.Logger) OperationOutcome {
		res, out := s.run(ctx, log, path, "pull", "pull")
		if out != nil {
			return *out
		}
		if !res.Success() {
			return s.pullFailure(res, "pull")
		}
		if upToDatePatterns.Matches(res.Stdout) {
			return succeeded(MsgAlreadyUpToDate)
		}
		return succeeded(MsgPulled)
	})
}

// Push pushes the current branch to its configured upstream.
func (s *SyncOperations) Push(ctx context.Context, path string) OperationOutcome {
	return s.operation("push", path, func(log zerolog.Logger) OperationOutcome {
		res, out := s.run(ctx, log, path, "push", "push")
		if out != nil {
			return *out
		}
		if res.Success() {
			return succeeded(MsgPushed)
		}
		return s.pushFailure(res, "push")
	})
}

// PushWithUpstream pushes branch to origin and makes origin/<branch> its
// upstream in one call.
func (s *SyncOperations) PushWithUpstream(ctx context.Context, path, branch string) OperationOutcome {
	return s.operation("push-upstream", path, func(log zerolog.Logger) OperationOutcome {
		if strings.TrimSpace(branch) == "" {
			return failed(ErrorTypeValidation, MsgEmptyBranch)
		}
		res, out := s.run(ctx, log, path, "push", "push", "-u", constants.DefaultRemote, branch)
		if out != nil {
			return *out
		}
		if res.Success() {
			return succeeded(fmt.Sprintf(msgPushedUpstream, constants.DefaultRemote, branch))
		}
		return s.pushFailure(res, "push")
	})
}

// AddRemote adds url as the origin remote. The URL is validated before any
// process is started.
func (s *SyncOperations) AddRemote(ctx context.Context, path, url string) OperationOutcome {
	if err := ValidateRemoteURL(url); err != nil {
		s.logger.Debug().Str("op", "add-remote").Str("path", path).Msg("rejected remote URL")
		return failed(ErrorTypeValidation, MsgInvalidRemoteURL)
	}

	return s.operation("add-remote", path, func(log zerolog.Logger) OperationOutcome {
		log.Debug().Str("url", logging.FilterSensitiveValue(url)).Msg("adding remote")

		res, out := s.run(ctx, log, path, "add remote", "remote", "add", constants.DefaultRemote, url)
		if out != nil {
			return *out
		}
		if res.Success() {
			return succeeded(MsgRemoteAdded)
		}
		if remoteExistsPatterns.Matches(res.Stderr) {
			return failed(ErrorTypeAlreadyExists, MsgRemoteExists)
		}
		return failed(ErrorTypeUnknown, diagnostic(res, "remote"))
	})
}

// operation applies the shared preamble and logging around one call.
func (s *SyncOperations) operation(name, path string, body func(zerolog.Logger) OperationOutcome) OperationOutcome {
	log := s.logger.With().
		Str("op", name).
		Str("op_id", uuid.NewString()).
		Str("path", path).
		Logger()

	if !s.repos.IsRepository(path) {
		log.Debug().Msg("not a git repository")
		return failed(ErrorTypeNotRepository, MsgNotRepository)
	}

	log.Debug().Msg("git operation started")
	out := body(log)

	if out.Success {
		log.Info().Str("result", out.Message).Msg("git operation succeeded")
	} else {
		log.Warn().
			Stringer("kind", out.Kind).
			Str("error", logging.FilterSensitiveValue(out.Error)).
			Msg("git operation failed")
	}
	return out
}

// run executes one git command. A non-nil outcome means the process never
// produced a result and the operation must stop with it.
func (s *SyncOperations) run(ctx context.Context, log zerolog.Logger, path, action string, args ...string) (*CommandResult, *OperationOutcome) {
	res, err := s.exec.Execute(ctx, path, args...)
	if err == nil {
		log.Debug().Str("git", args[0]).Int("exit_code", res.ExitCode).Msg("git command finished")
		return res, nil
	}

	kind := ErrorTypeUnavailable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = ErrorTypeUnknown
	}
	log.Error().Err(err).Str("git", args[0]).Msg("git command could not run")
	out := failed(kind, (&SpawnError{Action: action, Err: err}).Error())
	return nil, &out
}

func (s *SyncOperations) pullFailure(res *CommandResult, verb string) OperationOutcome {
	text := res.Combined()
	if text == "" {
		return failed(ErrorTypeUnknown, exitCodeMessage([]string{verb}, res.ExitCode))
	}
	return failed(s.classifier.ClassifyPullKind(text))
}

func (s *SyncOperations) pushFailure(res *CommandResult, verb string) OperationOutcome {
	if strings.TrimSpace(res.Stderr) == "" {
		return failed(ErrorTypeUnknown, exitCodeMessage([]string{verb}, res.ExitCode))
	}
	return failed(s.classifier.ClassifyPushKind(res.Stderr))
}

// diagnostic returns the trimmed stderr or the exit-code fallback.
func diagnostic(res *CommandResult, verb string) string {
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return s
	}
	return exitCodeMessage([]string{verb}, res.ExitCode)
}

// stagingDiagnostic is stderr with stdout appended, as git add may explain
// itself on either stream.
func stagingDiagnostic(res *CommandResult) string {
	text := strings.TrimSpace(res.Stderr)
	if out := strings.TrimSpace(res.Stdout); out != "" {
		if text != "" {
			text += "\n"
		}
		text += out
	}
	if text == "" {
		return exitCodeMessage([]string{"add"}, res.ExitCode)
	}
	return text
}
