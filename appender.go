package xjournal

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Variant is the stable tag an output channel declares for registry
// uniqueness. Two appenders carrying the same variant would deliver the same
// channel twice, so a router rejects the second registration. Comparing tags
// instead of concrete types keeps uniqueness stable across wrappers and
// recompilations.
type Variant string

// Variants of the sinks shipped in the root package. Bridge packages under
// appender/ declare their own.
const (
	VariantConsole Variant = "console"
	VariantMemory  Variant = "memory"
)

// Appender is the full output-channel contract a router consumes.
//
// Appenders must be passive recorders: deliver the rendered line unchanged
// and report, through LastEvent, the exact event instance most recently
// delivered. The router reads the first appender's LastEvent as
// representative for the whole registry when it books a critical event.
type Appender interface {
	// LogEvent validates ev, renders it through the shared layout, and
	// delivers it. The event becomes the last event only after delivery
	// succeeded.
	LogEvent(ev *Event) error
	// LogMessage mints an event through the shared factory and delegates to
	// LogEvent.
	LogMessage(msg string, sev Severity, fields ...Field) error
	// LastEvent returns the most recently delivered event, or nil before the
	// first successful delivery.
	LastEvent() *Event
	// Variant is the registry-uniqueness tag.
	Variant() Variant
	// String describes the appender for diagnostics.
	String() string
}

// Sink is the single step a concrete channel implements: put one rendered
// line where it belongs. Validation, layout and bookkeeping live in the
// template appender returned by NewAppender, so sinks stay small.
type Sink interface {
	Variant() Variant
	Deliver(line string, ev *Event) error
}

// appender wraps a Sink with the shared pipeline steps.
type appender struct {
	scope *Scope
	sink  Sink

	mu   sync.Mutex
	last *Event
}

// NewAppender wraps sink in the template pipeline: validate, render through
// the scope's layout, deliver, record. A nil scope means DefaultScope.
func NewAppender(sink Sink, scope *Scope) (Appender, error) {
	if sink == nil {
		return nil, &ValidationError{Reason: "sink must not be nil"}
	}
	if scope == nil {
		scope = DefaultScope()
	}
	return &appender{scope: scope, sink: sink}, nil
}

func (a *appender) LogEvent(ev *Event) error {
	if err := Validate(ev); err != nil {
		return err
	}
	line, err := a.scope.Layout().Format(ev)
	if err != nil {
		return err
	}
	if err := a.sink.Deliver(line, ev); err != nil {
		return err
	}
	a.mu.Lock()
	a.last = ev
	a.mu.Unlock()
	return nil
}

func (a *appender) LogMessage(msg string, sev Severity, fields ...Field) error {
	ev, err := a.scope.Factory()(msg, sev, time.Time{}, fields)
	if err != nil {
		return err
	}
	return a.LogEvent(ev)
}

func (a *appender) LastEvent() *Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *appender) Variant() Variant { return a.sink.Variant() }

func (a *appender) String() string {
	if s, ok := a.sink.(fmt.Stringer); ok {
		return s.String()
	}
	return string(a.sink.Variant())
}

// Close tears down the sink when it holds resources. Router.Close walks the
// registry through this.
func (a *appender) Close() error {
	if c, ok := a.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
