package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions controls the rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// filteringWriteCloser pairs a FilteringWriter with the closer underneath it.
type filteringWriteCloser struct {
	*FilteringWriter

	closer io.Closer
}

func (f *filteringWriteCloser) Close() error {
	return f.closer.Close()
}

// NewRotatingFile creates the parent directory of opts.Path and returns a
// lumberjack-backed writer that redacts sensitive data before it hits disk.
func NewRotatingFile(opts FileOptions) (io.WriteCloser, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("log file path is empty") //nolint:err113 // internal misuse
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	return &filteringWriteCloser{FilteringWriter: NewFilteringWriter(lj), closer: lj}, nil
}
