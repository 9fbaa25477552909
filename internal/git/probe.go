package git

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/notesync/internal/constants"
	"github.com/mrz1836/notesync/internal/ctxutil"
	"github.com/mrz1836/notesync/internal/logging"
)

// RepositoryChecker decides whether a path is a git working tree.
type RepositoryChecker interface {
	IsRepository(path string) bool
}

// Compile-time interface check.
var _ RepositoryChecker = (*Probe)(nil)

// Probe answers whether git is usable and whether a path is tracked.
type Probe struct {
	exec   CommandExecutor
	logger zerolog.Logger
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithProbeLogger sets the logger for probe operations.
func WithProbeLogger(logger zerolog.Logger) ProbeOption {
	return func(p *Probe) {
		p.logger = logger
	}
}

// NewProbe creates a Probe that runs git through exec.
func NewProbe(exec CommandExecutor, opts ...ProbeOption) *Probe {
	p := &Probe{exec: exec, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsAvailable reports whether git starts and answers a version query.
// Any failure collapses to false.
func (p *Probe) IsAvailable(ctx context.Context) bool {
	res, err := p.exec.Execute(ctx, "", "--version")
	if err != nil {
		p.logger.Debug().Err(err).Msg("git not available")
		return false
	}
	if !res.Success() {
		p.logger.Debug().Int("exit_code", res.ExitCode).Msg("git --version failed")
		return false
	}
	return true
}

// IsRepository reports whether path contains a .git entry. No subprocess is
// started; a .git file (worktrees, submodules) counts.
func (p *Probe) IsRepository(path string) bool {
	_, err := os.Stat(filepath.Join(path, constants.GitMetadataDir))
	return err == nil
}

// InitRepository runs git init in path. A non-zero exit returns a
// *CommandError carrying git's stderr.
func (p *Probe) InitRepository(ctx context.Context, path string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	res, err := p.exec.Execute(ctx, path, "init")
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return &SpawnError{Action: "run git init", Err: err}
	}
	if !res.Success() {
		cmdErr := newCommandError(res, "init")
		p.logger.Warn().
			Str("path", path).
			Int("exit_code", res.ExitCode).
			Str("stderr", logging.FilterSensitiveValue(cmdErr.Error())).
			Msg("git init failed")
		return cmdErr
	}

	p.logger.Info().Str("path", path).Msg("initialized repository")
	return nil
}
