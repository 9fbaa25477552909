// Package main provides the entry point for the notesync CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/notesync/internal/cli"
)

// Set via -ldflags at build time.
//
//nolint:gochecknoglobals // build metadata
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	os.Exit(cli.ExitCodeForError(err))
}
