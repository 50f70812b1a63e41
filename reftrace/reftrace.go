// Package reftrace logs entry reference-count changes of a lock space.
//
// Wire a Tracer into space.Options.Trace while hunting a guard leak
// (a key whose entry never becomes unused): every reference taken and
// dropped is logged with the key, the new count, and optionally the stack
// that took or dropped it. The tracer is a pure observer; it changes
// neither locking semantics nor cleanup decisions.
//
// The hook fires under a shard's map lock, so tracing is strictly a
// debugging tool: do not leave it enabled on hot paths in production.
package reftrace

import (
	"log/slog"
	"runtime/debug"

	"github.com/IvanBrykalov/lockspace/space"
)

// Tracer implements space.TraceHook on top of slog.
type Tracer struct {
	log       *slog.Logger
	withStack bool
}

// New constructs a Tracer writing to logger (nil => slog.Default()).
// If withStack is true, every event carries the caller's stack trace.
func New(logger *slog.Logger, withStack bool) *Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{log: logger, withStack: withStack}
}

// Ref logs a reference being taken.
func (t *Tracer) Ref(key any, refs int) { t.emit("ref", key, refs) }

// Unref logs a reference being dropped.
func (t *Tracer) Unref(key any, refs int) { t.emit("unref", key, refs) }

func (t *Tracer) emit(op string, key any, refs int) {
	attrs := []any{
		slog.String("op", op),
		slog.Any("key", key),
		slog.Int("refs", refs),
	}
	if t.withStack {
		attrs = append(attrs, slog.String("stack", string(debug.Stack())))
	}
	t.log.Debug("lockspace ref change", attrs...)
}

// Compile-time check: ensure Tracer implements space.TraceHook.
var _ space.TraceHook = (*Tracer)(nil)
