package xjournal

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/trickstertwo/xclock"
)

// Config carries everything a Router needs. The zero value is valid and
// fully silent (LevelOff, ActionExit); NewBuilder seeds the library defaults
// instead (LevelWarn, ActionExit).
type Config struct {
	// Level is the admission threshold, fixed for the router's lifetime.
	Level Level
	// Action decides whether critical events escalate (ActionExit) or let
	// the caller continue (ActionContinue). Fixed for the router's lifetime.
	Action Action
	// Scope supplies the shared layout and event factory; nil means
	// DefaultScope.
	Scope *Scope
	// Clock stamps minted events; nil means the process default clock.
	Clock xclock.Clock
	// Appenders seeds the registry, subject to the same nil and uniqueness
	// rules as AddAppender.
	Appenders []Appender
	// Observers are notified after each dispatch.
	Observers []Observer
}

// Router owns the admission policy, the appender registry and the critical
// history. Level and action never change after construction; the registry,
// the history and the counters are the mutable state, guarded by one mutex.
//
// Observer reads are lock-free via atomic.Value snapshots, updates go
// through obsMu with copy-on-write, following the usual read-mostly pattern.
type Router struct {
	level  Level
	action Action
	scope  *Scope
	clock  xclock.Clock

	mu        sync.Mutex
	appenders []Appender
	critical  []*Event
	errCount  int
	warnCount int

	observers atomic.Value // []Observer, immutable snapshot
	obsMu     sync.Mutex
}

// New constructs a Router from cfg. Unknown levels and actions are
// configuration errors; seed appenders are vetted like SetAppenders.
func New(cfg Config) (*Router, error) {
	if !cfg.Level.Valid() {
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown level %d", int(cfg.Level))}
	}
	if !cfg.Action.Valid() {
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown action %d", int(cfg.Action))}
	}
	scope := cfg.Scope
	if scope == nil {
		scope = DefaultScope()
	}
	r := &Router{
		level:  cfg.Level,
		action: cfg.Action,
		scope:  scope,
		clock:  cfg.Clock,
	}
	r.observers.Store(([]Observer)(nil))
	if cfg.Appenders != nil {
		if err := r.SetAppenders(cfg.Appenders); err != nil {
			return nil, err
		}
	}
	for _, o := range cfg.Observers {
		r.AddObserver(o)
	}
	return r, nil
}

// Level returns the admission threshold.
func (r *Router) Level() Level { return r.level }

// Action returns the critical-event action.
func (r *Router) Action() Action { return r.action }

// Scope returns the scope the router renders and mints through.
func (r *Router) Scope() *Scope { return r.scope }

// Error routes an ERROR event built from msg and fields.
func (r *Router) Error(msg string, fields ...Field) error {
	return r.Log(msg, SeverityError, fields...)
}

// Warn routes a WARN event built from msg and fields.
func (r *Router) Warn(msg string, fields ...Field) error {
	return r.Log(msg, SeverityWarn, fields...)
}

// Info routes an INFO event built from msg and fields.
func (r *Router) Info(msg string, fields ...Field) error {
	return r.Log(msg, SeverityInfo, fields...)
}

// Trace routes a TRACE event built from msg and fields.
func (r *Router) Trace(msg string, fields ...Field) error {
	return r.Log(msg, SeverityTrace, fields...)
}

// Log routes one message at sev through the full pipeline: admission,
// empty-registry fallback, minting, fan-out, observer notification, critical
// accounting, escalation. A suppressed event returns nil without side
// effects. Effects persist up to the step that fails; completed deliveries
// and recorded history are never rolled back.
func (r *Router) Log(msg string, sev Severity, fields ...Field) error {
	if !sev.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("unknown severity %d", int(sev))}
	}
	if !r.level.admits(sev) {
		return nil
	}
	targets, err := r.targets()
	if err != nil {
		return err
	}
	ev, err := r.mint(msg, sev, fields)
	if err != nil {
		return err
	}
	return r.dispatch(ev, targets)
}

// LogEvent routes a pre-built event through the same pipeline as Log. The
// event's own severity is checked against the admission threshold.
func (r *Router) LogEvent(ev *Event) error {
	if err := Validate(ev); err != nil {
		return err
	}
	if !r.level.admits(ev.sev) {
		return nil
	}
	targets, err := r.targets()
	if err != nil {
		return err
	}
	return r.dispatch(ev, targets)
}

// dispatch fans ev out to targets in order, notifies observers, and books
// critical events. A failing delivery aborts the remaining appenders;
// completed deliveries stand.
func (r *Router) dispatch(ev *Event, targets []Appender) error {
	if len(targets) == 0 {
		return &ValidationError{Reason: "dispatch needs at least one appender"}
	}
	for _, a := range targets {
		if err := a.LogEvent(ev); err != nil {
			return err
		}
	}
	r.notify(ev)
	if !ev.sev.Critical() {
		return nil
	}
	return r.recordCritical(targets[0])
}

// targets returns the registry snapshot for one dispatch, lazily installing
// the default console appender when the registry is empty. The fallback is
// registered, not ephemeral: it stays in the registry like any other
// appender.
func (r *Router) targets() ([]Appender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.appenders) == 0 {
		a, err := NewConsoleAppender(nil, ConsoleOptions{}, r.scope)
		if err != nil {
			return nil, err
		}
		r.appenders = append(r.appenders, a)
	}
	out := make([]Appender, len(r.appenders))
	copy(out, r.appenders)
	return out, nil
}

// mint builds the one event instance every appender will receive, stamped
// with the router's clock. Factory output crosses an API boundary and is
// revalidated.
func (r *Router) mint(msg string, sev Severity, fields []Field) (*Event, error) {
	ev, err := r.scope.Factory()(msg, sev, r.now(), fields)
	if err != nil {
		return nil, err
	}
	if err := Validate(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *Router) now() time.Time {
	if r.clock != nil {
		return r.clock.Now()
	}
	return xclock.Now()
}

// recordCritical books the event the first appender reports. Appenders are
// passive recorders delivering one shared instance, so the first one is
// representative of the whole registry. History and counters are updated
// before any escalation surfaces, and they stay updated when it does.
func (r *Router) recordCritical(first Appender) error {
	last := first.LastEvent()
	if err := Validate(last); err != nil {
		return err
	}
	r.mu.Lock()
	r.critical = append(r.critical, last)
	switch last.sev {
	case SeverityError:
		r.errCount++
	case SeverityWarn:
		r.warnCount++
	}
	r.mu.Unlock()
	if r.action == ActionContinue {
		return nil
	}
	line, err := r.scope.Layout().Format(last)
	if err != nil {
		return err
	}
	return &CriticalError{Line: line, Event: last}
}

// AddAppender registers a. Nil appenders and duplicate variants fail, and a
// failed add leaves the registry unchanged.
func (r *Router) AddAppender(a Appender) error {
	if a == nil {
		return &ValidationError{Reason: "appender must not be nil"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appenders {
		if existing.Variant() == a.Variant() {
			return &UniquenessError{Variant: a.Variant()}
		}
	}
	r.appenders = append(r.appenders, a)
	return nil
}

// SetAppenders replaces the whole registry atomically. The list is vetted
// first; when any member is nil or any variant repeats, the previous
// registry stays in place and every violation is reported together. An empty
// list is allowed and re-arms the console fallback.
func (r *Router) SetAppenders(appenders []Appender) error {
	if appenders == nil {
		return &ValidationError{Reason: "appender list must not be nil"}
	}
	var errs *multierror.Error
	seen := make(map[Variant]struct{}, len(appenders))
	next := make([]Appender, 0, len(appenders))
	for i, a := range appenders {
		if a == nil {
			errs = multierror.Append(errs, &ValidationError{Reason: fmt.Sprintf("appender at index %d is nil", i)})
			continue
		}
		if _, dup := seen[a.Variant()]; dup {
			errs = multierror.Append(errs, &UniquenessError{Variant: a.Variant()})
			continue
		}
		seen[a.Variant()] = struct{}{}
		next = append(next, a)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	r.mu.Lock()
	r.appenders = next
	r.mu.Unlock()
	return nil
}

// RemoveAppender removes the registered entry identical to a. Removing an
// appender that is not registered is a no-op.
func (r *Router) RemoveAppender(a Appender) {
	if a == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.appenders {
		if existing == a {
			r.appenders = append(r.appenders[:i], r.appenders[i+1:]...)
			return
		}
	}
}

// Appenders returns a copy of the registry in registration order.
func (r *Router) Appenders() []Appender {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Appender, len(r.appenders))
	copy(out, r.appenders)
	return out
}

// ErrorCount returns the number of ERROR events recorded since construction
// or the last Reset.
func (r *Router) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errCount
}

// WarningCount returns the number of WARN events recorded since construction
// or the last Reset.
func (r *Router) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnCount
}

// HasErrors reports whether any ERROR event was recorded.
func (r *Router) HasErrors() bool { return r.ErrorCount() > 0 }

// HasWarnings reports whether any WARN event was recorded.
func (r *Router) HasWarnings() bool { return r.WarningCount() > 0 }

// HasMessages reports whether any critical event was recorded.
func (r *Router) HasMessages() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errCount+r.warnCount > 0
}

// CriticalEvents returns a copy of the critical history, oldest first.
func (r *Router) CriticalEvents() []*Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Event, len(r.critical))
	copy(out, r.critical)
	return out
}

// Reset clears the critical history and both counters. The registry, level
// and action are untouched, and appenders keep their own last-event caches.
func (r *Router) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.critical = nil
	r.errCount = 0
	r.warnCount = 0
}

// ExportState snapshots the router's configuration, counters and critical
// history for external capture. The snapshot is detached: later routing does
// not mutate it.
func (r *Router) ExportState() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*Event, len(r.critical))
	copy(events, r.critical)
	return State{
		Level:          r.level.String(),
		Action:         r.action.String(),
		ErrorCount:     r.errCount,
		WarningCount:   r.warnCount,
		CriticalEvents: events,
	}
}

// Close tears down every appender that supports it, collecting all failures
// instead of stopping at the first. The registry itself stays in place.
func (r *Router) Close() error {
	r.mu.Lock()
	appenders := make([]Appender, len(r.appenders))
	copy(appenders, r.appenders)
	r.mu.Unlock()
	var errs *multierror.Error
	for _, a := range appenders {
		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}

// AddObserver registers o for dispatch notifications. Nil observers are
// ignored.
func (r *Router) AddObserver(o Observer) {
	if o == nil {
		return
	}
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	cur := r.observerSnapshot()
	next := make([]Observer, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, o)
	r.observers.Store(next)
}

func (r *Router) observerSnapshot() []Observer {
	v := r.observers.Load()
	if v == nil {
		return nil
	}
	return v.([]Observer)
}

func (r *Router) notify(ev *Event) {
	for _, o := range r.observerSnapshot() {
		o.OnEvent(ev)
	}
}
