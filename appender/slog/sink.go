// Package slogappender delivers rendered journal lines to the standard
// library's log/slog. The shared layout already rendered severity, message
// and extras into one line; this sink forwards that line as the slog message
// at the mapped level, with the event timestamp attached as "ts".
package slogappender

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xjournal"
)

// Variant tags slog appenders in the router registry.
const Variant = xjournal.Variant("slog")

// LevelTrace is the slog level TRACE events map to. slog stops at Debug;
// the trace slot sits one full step below it, mirroring slog's own spacing.
const LevelTrace = slog.LevelDebug - 4

// Sink forwards lines to a *slog.Logger. The handler must not filter below
// the journal's admission threshold; NewJSON builds one open down to
// LevelTrace.
type Sink struct {
	l *slog.Logger
}

// New wraps an existing slog logger; nil falls back to slog.Default.
func New(l *slog.Logger) *Sink {
	if l == nil {
		l = slog.Default()
	}
	return &Sink{l: l}
}

func (s *Sink) Variant() xjournal.Variant { return Variant }

func (s *Sink) String() string { return "slog" }

// Deliver emits the rendered line via LogAttrs, the cheapest slog call path.
func (s *Sink) Deliver(line string, ev *xjournal.Event) error {
	s.l.LogAttrs(context.Background(), mapSeverity(ev.Severity()), line,
		slog.Time("ts", ev.Time()))
	return nil
}

func mapSeverity(sev xjournal.Severity) slog.Level {
	switch sev {
	case xjournal.SeverityError:
		return slog.LevelError
	case xjournal.SeverityWarn:
		return slog.LevelWarn
	case xjournal.SeverityInfo:
		return slog.LevelInfo
	case xjournal.SeverityTrace:
		return LevelTrace
	default:
		return slog.LevelError
	}
}
