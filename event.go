package xjournal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/trickstertwo/xclock"
)

// Event is one immutable log event: a severity, a non-empty message, a
// timestamp, and zero or more extra fields. Events are built by a Factory
// (NewEvent by default), validated on construction, and shared by pointer
// through the whole pipeline; two events are the same event iff they are the
// same pointer.
type Event struct {
	sev    Severity
	msg    string
	at     time.Time
	fields []Field
}

// Factory mints events for message-style logging calls. The router installs
// a Factory per Scope; custom factories may attach host context, but their
// output is revalidated at every API boundary.
type Factory func(msg string, sev Severity, at time.Time, fields []Field) (*Event, error)

// defaultFactory adapts NewEvent to the Factory shape.
func defaultFactory(msg string, sev Severity, at time.Time, fields []Field) (*Event, error) {
	return NewEvent(msg, sev, at, fields...)
}

// NewEvent is the canonical event factory. A zero at stamps the event with
// the process clock (xclock). The fields slice is copied and validated; the
// returned event never aliases caller memory and never mutates afterwards.
func NewEvent(msg string, sev Severity, at time.Time, fields ...Field) (*Event, error) {
	if !sev.Valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown severity %d", int(sev))}
	}
	if msg == "" {
		return nil, &ValidationError{Reason: "message must be a non-empty string"}
	}
	if at.IsZero() {
		at = xclock.Now()
	}
	copied, err := copyValidFields(fields)
	if err != nil {
		return nil, err
	}
	return &Event{sev: sev, msg: msg, at: at, fields: copied}, nil
}

func copyValidFields(fields []Field) ([]Field, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]Field, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[f.K]; dup {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate field key %q", f.K)}
		}
		seen[f.K] = struct{}{}
		out[i] = f
	}
	return out, nil
}

// Validate re-runs construction checks against an externally supplied event.
// The router and the template appender call it whenever an event crosses an
// API boundary, so a zero-value or hand-assembled inconsistent Event fails
// here instead of corrupting downstream state.
func Validate(ev *Event) error {
	if ev == nil {
		return &ValidationError{Reason: "event must not be nil"}
	}
	if !ev.sev.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("event has unknown severity %d", int(ev.sev))}
	}
	if ev.msg == "" {
		return &ValidationError{Reason: "event message must be a non-empty string"}
	}
	if ev.at.IsZero() {
		return &ValidationError{Reason: "event timestamp must be a valid instant"}
	}
	seen := make(map[string]struct{}, len(ev.fields))
	for _, f := range ev.fields {
		if err := f.validate(); err != nil {
			return err
		}
		if _, dup := seen[f.K]; dup {
			return &ValidationError{Reason: fmt.Sprintf("duplicate field key %q", f.K)}
		}
		seen[f.K] = struct{}{}
	}
	return nil
}

// Severity returns the event's severity.
func (e *Event) Severity() Severity { return e.sev }

// Message returns the event's message.
func (e *Event) Message() string { return e.msg }

// Time returns the event's timestamp.
func (e *Event) Time() time.Time { return e.at }

// Fields returns a copy of the extra fields in declaration order. The event
// itself stays frozen.
func (e *Event) Fields() []Field {
	if len(e.fields) == 0 {
		return nil
	}
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// String is a deterministic one-line diagnostic form, independent of the
// active layout. Appender output goes through Layout.Format, not through
// String.
func (e *Event) String() string {
	var b strings.Builder
	b.WriteString("event(")
	b.WriteString(e.sev.String())
	b.WriteString(" @ ")
	b.WriteString(e.at.UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(strconv.Quote(e.msg))
	for _, f := range e.fields {
		b.WriteByte(' ')
		b.WriteString(f.K)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(f.text()))
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalJSON renders the event for State snapshots. Fields keep their
// declaration order.
func (e *Event) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteString(`{"type":"`)
	b.WriteString(e.sev.String())
	b.WriteString(`","message":`)
	appendJSONString(&b, e.msg)
	b.WriteString(`,"timestamp":"`)
	b.WriteString(e.at.UTC().Format(time.RFC3339Nano))
	b.WriteByte('"')
	if len(e.fields) > 0 {
		b.WriteString(`,"fields":`)
		appendFieldsJSON(&b, e.fields)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
