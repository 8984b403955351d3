// Package zerolog delivers rendered journal lines to rs/zerolog. The shared
// layout already rendered severity, message and extras into one line; this
// sink forwards that line as the zerolog message at the mapped level, with
// the event timestamp attached as "ts".
package zerolog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xjournal"
)

// Variant tags zerolog appenders in the router registry.
const Variant = xjournal.Variant("zerolog")

// Sink forwards lines to a zerolog.Logger.
//
// The logger must not filter below the journal's admission threshold:
// admission is the router's job, and a backend that drops delivered lines on
// its own breaks the passive-recorder contract. Use builds the logger wide
// open (TraceLevel) for exactly that reason.
type Sink struct {
	l zerolog.Logger
}

// New wraps an existing zerolog.Logger.
func New(l zerolog.Logger) *Sink {
	return &Sink{l: l}
}

func (s *Sink) Variant() xjournal.Variant { return Variant }

func (s *Sink) String() string { return "zerolog" }

// Deliver emits the rendered line at the mapped level. The timestamp is
// written as an RFC3339Nano string, keeping output deterministic regardless
// of zerolog's global time format.
func (s *Sink) Deliver(line string, ev *xjournal.Event) error {
	s.l.WithLevel(mapSeverity(ev.Severity())).
		Str("ts", ev.Time().UTC().Format(time.RFC3339Nano)).
		Msg(line)
	return nil
}

func mapSeverity(sev xjournal.Severity) zerolog.Level {
	switch sev {
	case xjournal.SeverityError:
		return zerolog.ErrorLevel
	case xjournal.SeverityWarn:
		return zerolog.WarnLevel
	case xjournal.SeverityInfo:
		return zerolog.InfoLevel
	case xjournal.SeverityTrace:
		return zerolog.TraceLevel
	default:
		// Events are validated upstream; treat anything else as loud.
		return zerolog.ErrorLevel
	}
}
