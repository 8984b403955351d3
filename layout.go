package xjournal

import (
	"strings"
	"time"
)

// Layout renders an Event to its canonical single-line form. Every appender
// attached to the same Scope renders through the same layout, so all
// channels emit identical lines for one event. A Layout must be pure: the
// same event always yields the same string.
type Layout interface {
	Format(ev *Event) (string, error)
}

// ShortLayout renders "[TYPE] message", followed by a JSON object of the
// extra fields when the event carries any:
//
//	[ERROR] disk full {"mount":"/data","free":0}
type ShortLayout struct{}

func (ShortLayout) Format(ev *Event) (string, error) {
	if err := Validate(ev); err != nil {
		return "", err
	}
	var b strings.Builder
	writeShort(&b, ev)
	return b.String(), nil
}

// LongLayout prefixes the short form with the event timestamp normalized to
// UTC as "YYYY-MM-DD HH:mm:ss,SSS" (comma milliseconds):
//
//	2026-08-23 14:05:09,042 [ERROR] disk full {"mount":"/data"}
//
// LongLayout is the default layout of a fresh Scope.
type LongLayout struct{}

func (LongLayout) Format(ev *Event) (string, error) {
	if err := Validate(ev); err != nil {
		return "", err
	}
	var b strings.Builder
	writeStamp(&b, ev.at)
	b.WriteByte(' ')
	writeShort(&b, ev)
	return b.String(), nil
}

// LayoutFunc adapts a plain formatting function to Layout. The adapter keeps
// the contract honest around the function: the event is validated before the
// call and an empty result is rejected after it.
type LayoutFunc func(ev *Event) string

func (f LayoutFunc) Format(ev *Event) (string, error) {
	if err := Validate(ev); err != nil {
		return "", err
	}
	line := f(ev)
	if line == "" {
		return "", &ValidationError{Reason: "layout function produced an empty line"}
	}
	return line, nil
}

// NewLayout wraps fn as a Layout after probing it once with a synthetic
// event. A function that panics on or cannot render the probe is rejected up
// front, so a broken formatter never becomes the shared layout.
func NewLayout(fn func(ev *Event) string) (Layout, error) {
	if fn == nil {
		return nil, &ValidationError{Reason: "layout function must not be nil"}
	}
	lf := LayoutFunc(fn)
	if err := probeLayout(lf); err != nil {
		return nil, err
	}
	return lf, nil
}

// probeLayout formats the synthetic probe event, converting a panic in a
// user-supplied function into a ValidationError.
func probeLayout(l Layout) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ValidationError{Reason: "layout panicked on the probe event"}
		}
	}()
	if _, ferr := l.Format(probeEvent()); ferr != nil {
		return &ValidationError{Reason: "layout rejected the probe event", Cause: ferr}
	}
	return nil
}

// probeEvent builds the synthetic event used to vet layouts. It exercises
// the full surface a layout must handle: message, timestamp, extra field.
func probeEvent() *Event {
	return &Event{
		sev:    SeverityInfo,
		msg:    "layout probe",
		at:     time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		fields: []Field{{K: "probe", Kind: KindString, Str: "true"}},
	}
}

func writeShort(b *strings.Builder, ev *Event) {
	b.WriteByte('[')
	b.WriteString(ev.sev.String())
	b.WriteString("] ")
	b.WriteString(ev.msg)
	if len(ev.fields) > 0 {
		b.WriteByte(' ')
		appendFieldsJSON(b, ev.fields)
	}
}

// writeStamp renders t in UTC as "2006-01-02 15:04:05,SSS". Go's reference
// layout has no comma-millisecond form, so the milliseconds are appended by
// hand, zero-padded to three digits.
func writeStamp(b *strings.Builder, t time.Time) {
	t = t.UTC()
	b.WriteString(t.Format("2006-01-02 15:04:05"))
	b.WriteByte(',')
	ms := t.Nanosecond() / int(time.Millisecond)
	b.WriteByte(byte('0' + ms/100))
	b.WriteByte(byte('0' + ms/10%10))
	b.WriteByte(byte('0' + ms%10))
}
