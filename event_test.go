package xjournal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
)

func TestNewEventValidates(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	if _, err := NewEvent("", SeverityInfo, at); !IsValidation(err) {
		t.Fatalf("empty message err = %v, want ValidationError", err)
	}
	if _, err := NewEvent("m", Severity(0), at); !IsValidation(err) {
		t.Fatalf("zero severity err = %v, want ValidationError", err)
	}
	if _, err := NewEvent("m", SeverityInfo, at, Str("type", "x")); !IsValidation(err) {
		t.Fatal("reserved field key must be rejected")
	}
	if _, err := NewEvent("m", SeverityInfo, at, Str("k", "a"), Str("k", "b")); !IsValidation(err) {
		t.Fatal("duplicate field key must be rejected")
	}

	ev, err := NewEvent("m", SeverityWarn, at, Str("k", "v"))
	if err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
	if ev.Severity() != SeverityWarn || ev.Message() != "m" || !ev.Time().Equal(at) {
		t.Fatalf("accessors disagree: %v", ev)
	}
}

func TestNewEventStampsZeroTime(t *testing.T) {
	ft := time.Date(2025, 6, 1, 12, 0, 0, 42_000_000, time.UTC)
	old := xclock.Default()
	defer xclock.SetDefault(old)
	xclock.SetDefault(xclock.NewFrozen(ft))

	ev, err := NewEvent("m", SeverityInfo, time.Time{})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if !ev.Time().Equal(ft) {
		t.Fatalf("stamped %v, want frozen %v", ev.Time(), ft)
	}
}

func TestEventIsDetachedFromCallerMemory(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	in := []Field{Str("k", "v")}
	ev, err := NewEvent("m", SeverityInfo, at, in...)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}

	in[0] = Str("k", "mutated")
	if got := ev.Fields()[0].Str; got != "v" {
		t.Fatalf("event aliased caller slice: %q", got)
	}

	out := ev.Fields()
	out[0] = Str("k", "mutated again")
	if got := ev.Fields()[0].Str; got != "v" {
		t.Fatalf("Fields() exposed internal slice: %q", got)
	}
}

func TestValidateCatchesHandAssembledEvents(t *testing.T) {
	t.Parallel()

	if err := Validate(nil); !IsValidation(err) {
		t.Fatalf("nil event err = %v", err)
	}
	if err := Validate(&Event{}); !IsValidation(err) {
		t.Fatalf("zero event err = %v", err)
	}
	if err := Validate(&Event{sev: SeverityInfo, msg: "m"}); !IsValidation(err) {
		t.Fatal("zero timestamp must be rejected")
	}
}

func TestEventStringIsDeterministic(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC)
	ev, err := NewEvent("state changed", SeverityError, at, Str("from", "old"), Int("count", 2))
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	want := `event(ERROR @ 2024-12-31T23:59:59.123456789Z "state changed" from="old" count="2")`
	if got := ev.String(); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
	if ev.String() != ev.String() {
		t.Fatal("String not stable")
	}
}

func TestEventMarshalJSON(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	ev, err := NewEvent("disk full", SeverityError, at, Str("mount", "/data"), Int("free", 0))
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"ERROR","message":"disk full","timestamp":"2024-12-31T23:59:59Z","fields":{"mount":"/data","free":0}}`
	if string(raw) != want {
		t.Fatalf("json = %s, want %s", raw, want)
	}
	if !json.Valid(raw) {
		t.Fatalf("invalid json: %s", raw)
	}

	bare, err := NewEvent("plain", SeverityInfo, at)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	raw, err = json.Marshal(bare)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"type":"INFO","message":"plain","timestamp":"2024-12-31T23:59:59Z"}` {
		t.Fatalf("bare json = %s", raw)
	}
}
