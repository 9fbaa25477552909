// Package ai wraps the Claude Code CLI, which edits a note in place from a
// natural-language instruction.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"

	"github.com/mrz1836/notesync/internal/config"
	"github.com/mrz1836/notesync/internal/constants"
	"github.com/mrz1836/notesync/internal/logging"
)

// Messages reported in EditResult.Error.
const (
	MsgAssistantFailed  = "Claude Code exited with an error"
	MsgAssistantTimeout = "Claude Code timed out"
	MsgEmptyPrompt      = "Prompt cannot be empty"
	MsgEmptyNotePath    = "Note path cannot be empty"
)

// CommandExecutor abstracts process execution so tests never start the
// real assistant.
type CommandExecutor interface {
	// Execute runs cmd and returns its output. A non-nil error is either an
	// exit error (anything with an ExitCode method, like *exec.ExitError) or
	// a failure to start the process.
	Execute(ctx context.Context, cmd *exec.Cmd) (stdout, stderr []byte, err error)
}

// DefaultExecutor runs commands with os/exec.
type DefaultExecutor struct{}

// Execute runs the command and captures its output.
func (e *DefaultExecutor) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// exitCoder matches *exec.ExitError: the process ran and exited non-zero.
type exitCoder interface {
	ExitCode() int
}

// EditResult is the outcome of one assistant edit.
type EditResult struct {
	Success    bool   `json:"success"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	SessionURL string `json:"sessionUrl,omitempty"`
}

// Editor invokes the assistant CLI.
type Editor struct {
	binary   string
	tools    []string
	timeout  time.Duration
	executor CommandExecutor
	logger   zerolog.Logger
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithEditorLogger sets the logger for assistant invocations.
func WithEditorLogger(logger zerolog.Logger) EditorOption {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithExecutor replaces the process executor.
func WithExecutor(executor CommandExecutor) EditorOption {
	return func(e *Editor) {
		e.executor = executor
	}
}

// NewEditor creates an Editor from the assistant configuration. A nil cfg
// uses the built-in defaults.
func NewEditor(cfg *config.AssistantConfig, opts ...EditorOption) *Editor {
	if cfg == nil {
		cfg = &config.DefaultConfig().Assistant
	}
	e := &Editor{
		binary:   cfg.Binary,
		tools:    cfg.AllowedTools,
		timeout:  cfg.Timeout,
		executor: &DefaultExecutor{},
		logger:   zerolog.Nop(),
	}
	if e.binary == "" {
		e.binary = constants.DefaultAssistantBinary
	}
	if len(e.tools) == 0 {
		e.tools = constants.DefaultAssistantTools()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsAvailable reports whether the assistant answers a version query.
func (e *Editor) IsAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, e.binary, "--version") //#nosec G204 -- binary comes from config
	_, _, err := e.executor.Execute(ctx, cmd)
	if err != nil {
		e.logger.Debug().Err(err).Str("binary", e.binary).Msg("assistant not available")
		return false
	}
	return true
}

// BuildPrompt returns the instruction sent to the assistant.
func BuildPrompt(notePath, prompt string) string {
	return fmt.Sprintf("Edit the file at %s. Here is what the user wants: %s", notePath, prompt)
}

// EditNote asks the assistant to edit notePath. A relative path is resolved
// against the working directory; the assistant runs in the note's directory
// and is given the absolute path, with only the configured tools allowed.
func (e *Editor) EditNote(ctx context.Context, notePath, prompt string) EditResult {
	switch {
	case strings.TrimSpace(notePath) == "":
		return EditResult{Error: MsgEmptyNotePath}
	case strings.TrimSpace(prompt) == "":
		return EditResult{Error: MsgEmptyPrompt}
	}

	abs, err := filepath.Abs(notePath)
	if err != nil {
		return EditResult{Error: fmt.Sprintf("Failed to resolve %s: %v", notePath, err)}
	}
	notePath = abs

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := []string{
		"-p", BuildPrompt(notePath, prompt),
		"--allowedTools", strings.Join(e.tools, ","),
	}
	cmd := exec.CommandContext(ctx, e.binary, args...) //#nosec G204 -- binary comes from config, prompt is a single argument
	cmd.Dir = filepath.Dir(notePath)

	log := e.logger.With().Str("note", notePath).Logger()
	log.Debug().Strs("tools", e.tools).Msg("invoking assistant")

	stdoutRaw, stderrRaw, err := e.executor.Execute(ctx, cmd)
	stdout, stderr := decode(stdoutRaw), decode(stderrRaw)

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warn().Dur("timeout", e.timeout).Msg("assistant timed out")
		return EditResult{
			Output:     stdout,
			Error:      e.timeoutMessage(),
			SessionURL: sessionURL(stdout, stderr),
		}
	}

	var exited exitCoder
	if err != nil && !errors.As(err, &exited) {
		log.Error().Err(err).Msg("assistant could not run")
		return EditResult{Error: fmt.Sprintf("Failed to run %s: %v", e.binary, err)}
	}

	result := EditResult{
		Success:    err == nil,
		Output:     stdout,
		SessionURL: sessionURL(stdout, stderr),
	}
	if !result.Success {
		result.Error = stderr
		if strings.TrimSpace(result.Error) == "" {
			result.Error = MsgAssistantFailed
		}
		log.Warn().
			Str("stderr", logging.FilterSensitiveValue(strings.TrimSpace(stderr))).
			Msg("assistant edit failed")
		return result
	}

	log.Info().Bool("has_session", result.SessionURL != "").Msg("assistant edit finished")
	return result
}

func (e *Editor) timeoutMessage() string {
	if e.timeout > 0 {
		return fmt.Sprintf("%s after %s", MsgAssistantTimeout, e.timeout)
	}
	return MsgAssistantTimeout
}

// sessionURL searches stdout before stderr.
func sessionURL(stdout, stderr string) string {
	if url, ok := ExtractSessionURL(stdout); ok {
		return url
	}
	url, _ := ExtractSessionURL(stderr)
	return url
}

// ExtractSessionURL finds the first line mentioning a claude.ai session and
// returns the https:// token on it, or the whole trimmed line when there is
// no such token.
func ExtractSessionURL(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "claude.ai/") || !strings.Contains(line, "session") {
			continue
		}
		if start := strings.Index(line, "https://"); start >= 0 {
			if fields := strings.Fields(line[start:]); len(fields) > 0 {
				return fields[0], true
			}
		}
		return strings.TrimSpace(line), true
	}
	return "", false
}

func decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
