package cli

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/mrz1836/notesync/internal/config"
	"github.com/mrz1836/notesync/internal/logging"
)

// logFileWriter holds the open log file so it can be closed at shutdown.
var (
	logFileWriter   io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup
	logFileWriterMu sync.Mutex     //nolint:gochecknoglobals // Protects logFileWriter
)

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// configureZerologGlobals sets the field names used in the log file.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// InitLogger creates the CLI logger.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Console output is human-readable on a TTY without NO_COLOR and JSON
// otherwise. When cfg.FileEnabled is set, entries are also written to the
// rotating log file with secrets redacted. A log file that cannot be opened
// falls back to console-only logging.
func InitLogger(verbose, quiet bool, cfg config.LoggingConfig) zerolog.Logger {
	configureZerologGlobals()

	writer := selectOutput()
	if cfg.FileEnabled {
		if fileWriter, err := createLogFileWriter(cfg); err == nil {
			setLogFileWriter(fileWriter)
			writer = zerolog.MultiLevelWriter(writer, fileWriter)
		}
	}

	logger := buildLogger(writer, verbose, quiet)
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a logger writing only to w.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	configureZerologGlobals()

	logger := buildLogger(w, verbose, quiet)
	setGlobalLogger(logger)
	return logger
}

func buildLogger(w io.Writer, verbose, quiet bool) zerolog.Logger {
	return zerolog.New(w).
		Level(selectLevel(verbose, quiet)).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
}

// setGlobalLogger points the zerolog/log package logger at the CLI logger.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

func setLogFileWriter(w io.WriteCloser) {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
	}
	logFileWriter = w
}

// CloseLogFile closes the log file writer if one was opened.
// Call it during shutdown.
func CloseLogFile() {
	setLogFileWriter(nil)
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks the console writer for stderr.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter opens the rotating CLI log in the global directory.
func createLogFileWriter(cfg config.LoggingConfig) (io.WriteCloser, error) {
	path, err := config.LogFilePath()
	if err != nil {
		return nil, err
	}

	return logging.NewRotatingFile(logging.FileOptions{
		Path:       path,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
}
