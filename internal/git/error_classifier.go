package git

import "strings"

// ErrorType is the machine-readable category of a failed operation.
type ErrorType int

const (
	// ErrorTypeNone marks a successful outcome.
	ErrorTypeNone ErrorType = iota
	// ErrorTypeUnknown is an unclassified failure; the raw diagnostic is kept.
	ErrorTypeUnknown
	// ErrorTypeAuth indicates rejected credentials or SSH key.
	ErrorTypeAuth
	// ErrorTypeNetwork indicates the remote host could not be reached.
	ErrorTypeNetwork
	// ErrorTypeNotFound indicates the remote repository does not exist.
	ErrorTypeNotFound
	// ErrorTypeDiverged indicates a non-fast-forward between local and remote.
	ErrorTypeDiverged
	// ErrorTypeConflict indicates merge conflicts in the working tree.
	ErrorTypeConflict
	// ErrorTypeAlreadyExists indicates the origin remote is already configured.
	ErrorTypeAlreadyExists
	// ErrorTypeValidation indicates bad input rejected before running git.
	ErrorTypeValidation
	// ErrorTypeNotRepository indicates the path has no git metadata.
	ErrorTypeNotRepository
	// ErrorTypeUnavailable indicates git could not be started.
	ErrorTypeUnavailable
)

// String returns the machine name of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeNone:
		return "none"
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeAuth:
		return "authentication"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDiverged:
		return "diverged"
	case ErrorTypeConflict:
		return "conflict"
	case ErrorTypeAlreadyExists:
		return "already_exists"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotRepository:
		return "not_repository"
	case ErrorTypeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type by name in JSON output.
func (e ErrorType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes a name written by MarshalText. Unrecognized names
// decode as ErrorTypeUnknown.
func (e *ErrorType) UnmarshalText(text []byte) error {
	for t := ErrorTypeNone; t <= ErrorTypeUnavailable; t++ {
		if t.String() == string(text) {
			*e = t
			return nil
		}
	}
	*e = ErrorTypeUnknown
	return nil
}

// Fixed user-facing messages for classified failures.
const (
	MsgConflict = "Merge conflicts detected. Resolve them manually, then commit."
	MsgAuth     = "Authentication failed. Check your credentials or SSH key."
	MsgNetwork  = "Could not connect to the remote. Check your network connection."
	MsgDiverged = "Local and remote histories have diverged. Rebase or merge manually."
	MsgNotFound = "Remote repository not found. Check the remote URL."
)

// PatternMatcher checks if a string contains any of a list of patterns.
// Matching is case-insensitive; patterns must be lowercase.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a PatternMatcher with the given lowercase patterns.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Matches returns true if s contains any of the patterns.
func (m *PatternMatcher) Matches(s string) bool {
	return m.MatchesLower(strings.ToLower(s))
}

// MatchesLower is Matches for input that is already lowercased.
func (m *PatternMatcher) MatchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Package-level immutable pattern matchers
var (
	conflictPatterns = NewPatternMatcher(
		"conflict",
		"automatic merge failed",
		"fix conflicts",
		"unmerged files",
	)

	authPatterns = NewPatternMatcher(
		"permission denied",
		"publickey",
		"authentication failed",
		"could not read username",
		"invalid username or password",
		"host key verification failed",
	)

	networkPatterns = NewPatternMatcher(
		"could not resolve host",
		"could not resolve hostname",
		"connection refused",
		"connection timed out",
		"network is unreachable",
		"no route to host",
		"failed to connect",
	)

	divergedPatterns = NewPatternMatcher(
		"non-fast-forward",
		"diverged",
		"divergent branches",
		"not possible to fast-forward",
		"fetch first",
	)

	notFoundPatterns = NewPatternMatcher(
		"repository not found",
		"does not exist",
	)
)

// classRule pairs a matcher with the category it selects.
type classRule struct {
	kind    ErrorType
	matcher *PatternMatcher
	message string
}

// ErrorClassifier maps raw git diagnostics to fixed user-facing messages.
// Rules are checked in order and the first match wins, since one diagnostic
// can contain several matchable markers.
type ErrorClassifier struct {
	pull []classRule
	push []classRule
}

// NewErrorClassifier returns a classifier with the standard rule order:
// pull is conflict, auth, network, diverged; push is auth, not found, network.
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{
		pull: []classRule{
			{ErrorTypeConflict, conflictPatterns, MsgConflict},
			{ErrorTypeAuth, authPatterns, MsgAuth},
			{ErrorTypeNetwork, networkPatterns, MsgNetwork},
			{ErrorTypeDiverged, divergedPatterns, MsgDiverged},
		},
		push: []classRule{
			{ErrorTypeAuth, authPatterns, MsgAuth},
			{ErrorTypeNotFound, notFoundPatterns, MsgNotFound},
			{ErrorTypeNetwork, networkPatterns, MsgNetwork},
		},
	}
}

//nolint:gochecknoglobals // Singleton classifier for package use
var defaultClassifier = NewErrorClassifier()

// ClassifyPull maps pull or fetch diagnostics using the default classifier.
func ClassifyPull(text string) string {
	return defaultClassifier.ClassifyPull(text)
}

// ClassifyPush maps push diagnostics using the default classifier.
func ClassifyPush(text string) string {
	return defaultClassifier.ClassifyPush(text)
}

// ClassifyPull returns the fixed message for the first matching pull rule,
// or the trimmed text when nothing matches.
func (c *ErrorClassifier) ClassifyPull(text string) string {
	_, msg := c.ClassifyPullKind(text)
	return msg
}

// ClassifyPush returns the fixed message for the first matching push rule,
// or the trimmed text when nothing matches.
func (c *ErrorClassifier) ClassifyPush(text string) string {
	_, msg := c.ClassifyPushKind(text)
	return msg
}

// ClassifyPullKind is ClassifyPull with the matched ErrorType.
func (c *ErrorClassifier) ClassifyPullKind(text string) (ErrorType, string) {
	return classify(c.pull, text)
}

// ClassifyPushKind is ClassifyPush with the matched ErrorType.
func (c *ErrorClassifier) ClassifyPushKind(text string) (ErrorType, string) {
	return classify(c.push, text)
}

func classify(rules []classRule, text string) (ErrorType, string) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matcher.MatchesLower(lower) {
			return r.kind, r.message
		}
	}
	return ErrorTypeUnknown, strings.TrimSpace(text)
}
