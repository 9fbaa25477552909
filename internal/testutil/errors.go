// Package testutil provides shared test fixtures for notesync.
//
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Process start failures returned by fake executors. Their text mirrors what
// os/exec reports so message assertions read like real runs.
var (
	// ErrMockExecNotFound is the error os/exec returns for a missing git binary.
	ErrMockExecNotFound = errors.New(`exec: "git": executable file not found in $PATH`)

	// ErrMockNotFound is a short missing-executable error.
	ErrMockNotFound = errors.New("executable file not found")

	// ErrMockPermission simulates a binary that cannot be executed.
	ErrMockPermission = errors.New("permission denied")

	// ErrMockResource simulates fork failure under resource pressure.
	ErrMockResource = errors.New("fork/exec: resource temporarily unavailable")
)
