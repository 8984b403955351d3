package xjournal

import (
	"sync"
	"sync/atomic"
)

// Package facade over one process-wide default router.
//
// Logging calls bootstrap the default router lazily with the library
// defaults (LevelWarn, ActionExit), so `xjournal.Error(...)` works with zero
// setup. Introspection calls never bootstrap: they return ErrNotInitialized
// when nothing has activated the router yet, because a question about a
// router that never existed is a caller bug.

var (
	bootMu  sync.Mutex
	defInst atomic.Pointer[Router]
)

// Init activates the default router with cfg. The first successful call
// wins; later calls return the existing instance and ignore their argument.
// An invalid cfg on the first call leaves the slot empty.
func Init(cfg Config) (*Router, error) {
	bootMu.Lock()
	defer bootMu.Unlock()
	if r := defInst.Load(); r != nil {
		return r, nil
	}
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	defInst.Store(r)
	return r, nil
}

// Active returns the default router, or ErrNotInitialized when neither Init
// nor a logging call has activated it.
func Active() (*Router, error) {
	if r := defInst.Load(); r != nil {
		return r, nil
	}
	return nil, ErrNotInitialized
}

// ClearInstance discards the default router with its history, counters and
// registry. Appenders keep their own last-event caches. Primarily a test
// isolation escape hatch.
func ClearInstance() {
	bootMu.Lock()
	defer bootMu.Unlock()
	defInst.Store(nil)
}

// instance returns the default router, bootstrapping it with the library
// defaults on first use. The bootstrap itself is traced so a host running at
// TRACE can see exactly when and how the default came to exist; with the
// stock WARN threshold the trace is suppressed.
func instance() *Router {
	if r := defInst.Load(); r != nil {
		return r
	}
	bootMu.Lock()
	r := defInst.Load()
	booted := false
	if r == nil {
		// The default Config is always valid, so Build cannot fail here.
		r, _ = NewBuilder().Build()
		defInst.Store(r)
		booted = true
	}
	bootMu.Unlock()
	if booted {
		_ = r.Trace("default router bootstrapped",
			Str("level", r.Level().String()),
			Str("action", r.Action().String()))
	}
	return r
}

// Error routes an ERROR event through the default router.
func Error(msg string, fields ...Field) error {
	return instance().Error(msg, fields...)
}

// Warn routes a WARN event through the default router.
func Warn(msg string, fields ...Field) error {
	return instance().Warn(msg, fields...)
}

// Info routes an INFO event through the default router.
func Info(msg string, fields ...Field) error {
	return instance().Info(msg, fields...)
}

// Trace routes a TRACE event through the default router.
func Trace(msg string, fields ...Field) error {
	return instance().Trace(msg, fields...)
}

// Log routes one message at sev through the default router.
func Log(msg string, sev Severity, fields ...Field) error {
	return instance().Log(msg, sev, fields...)
}

// ErrorCount returns the default router's ERROR tally.
func ErrorCount() (int, error) {
	r, err := Active()
	if err != nil {
		return 0, err
	}
	return r.ErrorCount(), nil
}

// WarningCount returns the default router's WARN tally.
func WarningCount() (int, error) {
	r, err := Active()
	if err != nil {
		return 0, err
	}
	return r.WarningCount(), nil
}

// HasErrors reports whether the default router recorded any ERROR event.
func HasErrors() (bool, error) {
	r, err := Active()
	if err != nil {
		return false, err
	}
	return r.HasErrors(), nil
}

// HasWarnings reports whether the default router recorded any WARN event.
func HasWarnings() (bool, error) {
	r, err := Active()
	if err != nil {
		return false, err
	}
	return r.HasWarnings(), nil
}

// HasMessages reports whether the default router recorded any critical
// event.
func HasMessages() (bool, error) {
	r, err := Active()
	if err != nil {
		return false, err
	}
	return r.HasMessages(), nil
}

// CriticalEvents returns the default router's critical history, oldest
// first.
func CriticalEvents() ([]*Event, error) {
	r, err := Active()
	if err != nil {
		return nil, err
	}
	return r.CriticalEvents(), nil
}

// ExportState snapshots the default router.
func ExportState() (State, error) {
	r, err := Active()
	if err != nil {
		return State{}, err
	}
	return r.ExportState(), nil
}

// Reset clears the default router's critical history and counters.
func Reset() error {
	r, err := Active()
	if err != nil {
		return err
	}
	r.Reset()
	return nil
}
