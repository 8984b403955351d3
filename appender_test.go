package xjournal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// failSink rejects every delivery.
type failSink struct{ err error }

func (s *failSink) Variant() Variant { return Variant("fail") }

func (s *failSink) Deliver(string, *Event) error { return s.err }

// stubSink records deliveries under an arbitrary variant tag.
type stubSink struct {
	variant Variant
	lines   []string
	events  []*Event
}

func (s *stubSink) Variant() Variant { return s.variant }

func (s *stubSink) Deliver(line string, ev *Event) error {
	s.lines = append(s.lines, line)
	s.events = append(s.events, ev)
	return nil
}

func TestNewAppenderRejectsNilSink(t *testing.T) {
	t.Parallel()

	if _, err := NewAppender(nil, NewScope()); !IsValidation(err) {
		t.Fatalf("nil sink err = %v", err)
	}
}

func TestAppenderRecordsLastOnlyAfterDelivery(t *testing.T) {
	t.Parallel()

	scope := NewScope()
	boom := errors.New("sink down")
	a, err := NewAppender(&failSink{err: boom}, scope)
	if err != nil {
		t.Fatalf("NewAppender: %v", err)
	}

	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	ev := mustEvent(t, "m", SeverityInfo, at)
	if err := a.LogEvent(ev); !errors.Is(err, boom) {
		t.Fatalf("LogEvent err = %v, want sink error", err)
	}
	if a.LastEvent() != nil {
		t.Fatal("failed delivery must not be recorded")
	}

	sink := &stubSink{variant: "stub"}
	a, err = NewAppender(sink, scope)
	if err != nil {
		t.Fatalf("NewAppender: %v", err)
	}
	if err := a.LogEvent(ev); err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
	if a.LastEvent() != ev {
		t.Fatal("LastEvent must return the delivered instance")
	}
	if len(sink.events) != 1 || sink.events[0] != ev {
		t.Fatal("sink must receive the shared instance")
	}
}

func TestAppenderValidatesBeforeDelivery(t *testing.T) {
	t.Parallel()

	sink := &stubSink{variant: "stub"}
	a, err := NewAppender(sink, NewScope())
	if err != nil {
		t.Fatalf("NewAppender: %v", err)
	}
	if err := a.LogEvent(nil); !IsValidation(err) {
		t.Fatalf("nil event err = %v", err)
	}
	if err := a.LogEvent(&Event{}); !IsValidation(err) {
		t.Fatalf("zero event err = %v", err)
	}
	if len(sink.lines) != 0 {
		t.Fatal("invalid events must not reach the sink")
	}
	if a.LastEvent() != nil {
		t.Fatal("invalid events must not be recorded")
	}
}

func TestAppenderLogMessageUsesScopeFactory(t *testing.T) {
	t.Parallel()

	scope := NewScope()
	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	if err := scope.SetFactory(func(msg string, sev Severity, _ time.Time, fields []Field) (*Event, error) {
		return NewEvent("minted: "+msg, sev, at, fields...)
	}); err != nil {
		t.Fatalf("SetFactory: %v", err)
	}

	sink := &stubSink{variant: "stub"}
	a, err := NewAppender(sink, scope)
	if err != nil {
		t.Fatalf("NewAppender: %v", err)
	}
	if err := a.LogMessage("hello", SeverityInfo, Str("k", "v")); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}
	if got := a.LastEvent().Message(); got != "minted: hello" {
		t.Fatalf("message = %q", got)
	}
	if len(sink.lines) != 1 || !strings.Contains(sink.lines[0], "minted: hello") {
		t.Fatalf("lines = %q", sink.lines)
	}
}

func TestAppenderStringFallsBackToVariant(t *testing.T) {
	t.Parallel()

	a, err := NewAppender(&stubSink{variant: "stub"}, NewScope())
	if err != nil {
		t.Fatalf("NewAppender: %v", err)
	}
	if a.String() != "stub" {
		t.Fatalf("String = %q", a.String())
	}
	if a.Variant() != Variant("stub") {
		t.Fatalf("Variant = %q", a.Variant())
	}

	c, err := NewConsoleAppender(&bytes.Buffer{}, ConsoleOptions{}, NewScope())
	if err != nil {
		t.Fatalf("NewConsoleAppender: %v", err)
	}
	if c.String() != "console" {
		t.Fatalf("console String = %q", c.String())
	}
}

func TestConsoleSinkWritesLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a, err := NewConsoleAppender(&buf, ConsoleOptions{}, NewScope())
	if err != nil {
		t.Fatalf("NewConsoleAppender: %v", err)
	}
	at := time.Date(2024, 12, 31, 23, 59, 59, 123000000, time.UTC)
	if err := a.LogEvent(mustEvent(t, "service started", SeverityInfo, at)); err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
	want := "2024-12-31 23:59:59,123 [INFO] service started\n"
	if got := buf.String(); got != want {
		t.Fatalf("wrote %q, want %q", got, want)
	}
}

func TestConsoleColorsKeepLineIntact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a, err := NewConsoleAppender(&buf, ConsoleOptions{Colors: true}, NewScope())
	if err != nil {
		t.Fatalf("NewConsoleAppender: %v", err)
	}
	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	if err := a.LogEvent(mustEvent(t, "boom", SeverityError, at)); err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
	// Escape codes depend on terminal detection; the rendered line must
	// survive either way.
	if !strings.Contains(buf.String(), "[ERROR] boom") {
		t.Fatalf("wrote %q", buf.String())
	}
}

func TestMemorySinkCapturesInOrder(t *testing.T) {
	t.Parallel()

	scope := NewScope()
	a, mem, err := NewMemoryAppender(scope)
	if err != nil {
		t.Fatalf("NewMemoryAppender: %v", err)
	}
	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	for _, msg := range []string{"one", "two", "three"} {
		if err := a.LogEvent(mustEvent(t, msg, SeverityInfo, at)); err != nil {
			t.Fatalf("LogEvent(%q): %v", msg, err)
		}
	}
	lines := mem.Lines()
	if len(lines) != 3 || mem.Len() != 3 {
		t.Fatalf("captured %d lines", len(lines))
	}
	for i, msg := range []string{"one", "two", "three"} {
		if !strings.HasSuffix(lines[i], "[INFO] "+msg) {
			t.Fatalf("line %d = %q", i, lines[i])
		}
	}
	if events := mem.Events(); len(events) != 3 || events[2].Message() != "three" {
		t.Fatalf("events = %v", events)
	}

	mem.Reset()
	if mem.Len() != 0 {
		t.Fatal("Reset must drop the capture")
	}
}
