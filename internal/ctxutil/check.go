// Package ctxutil provides context helpers shared by the git and ai packages.
package ctxutil

import (
	"context"
	"fmt"
)

// Canceled returns ctx.Err(): nil while the context is live, Canceled or
// DeadlineExceeded once it is done. Used at function entry points.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// Interrupted reports whether the context ended while the named work was in
// progress, returning a wrapped context error or nil.
func Interrupted(ctx context.Context, what string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s interrupted: %w", what, err)
	}
	return nil
}
