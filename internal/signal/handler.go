// Package signal turns SIGINT and SIGTERM into context cancellation so a
// running git or assistant process is stopped when the user presses Ctrl+C.
//
// This package imports only the standard library.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context on the first interrupt signal.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	stopped     chan struct{}
	sigChan     chan os.Signal
	fireOnce    sync.Once
	stopOnce    sync.Once
}

// NewHandler derives a cancellable context from parent and starts listening
// for SIGINT and SIGTERM.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	outcome := ops.Pull(h.Context(), repo)
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		stopped:     make(chan struct{}),
		// signal.Notify does not block; a buffer of 1 keeps the first signal.
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context canceled on interrupt or Stop.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed when a signal arrives. Stop does not close it.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// WasInterrupted reports whether a signal has been received.
func (h *Handler) WasInterrupted() bool {
	select {
	case <-h.interrupted:
		return true
	default:
		return false
	}
}

// Stop unregisters the signal listener and cancels the context.
// It is safe to call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.stopped)
		h.cancel()
	})
}

func (h *Handler) fire() {
	h.fireOnce.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.stopped:
			return
		case <-h.sigChan:
			h.fire()
		}
	}
}
