package flock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/notesync/internal/errors"
)

// Lock is a held exclusive lock on a file.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the file at path and takes an
// exclusive lock on it without blocking. A lock held elsewhere yields
// errors.ErrLockHeld.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //#nosec G304 -- path is built from the repository root
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", errors.ErrLockHeld, path)
	}

	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file. The file itself is left in
// place. Release on a nil or released Lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	unlockErr := Unlock(f.Fd())
	closeErr := f.Close()
	if unlockErr != nil {
		return fmt.Errorf("failed to unlock: %w", unlockErr)
	}
	return closeErr
}
