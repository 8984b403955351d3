// Package zapappender delivers rendered journal lines to go.uber.org/zap.
// The shared layout already rendered severity, message and extras into one
// line; this sink forwards that line as the zap message at the mapped level,
// with the event timestamp attached as "ts".
package zapappender

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xjournal"
)

// Variant tags zap appenders in the router registry.
const Variant = xjournal.Variant("zap")

// Sink forwards lines to a *zap.Logger. The logger must not filter below the
// journal's admission threshold; Use builds its core at DebugLevel so the
// router stays the only filter.
type Sink struct {
	l *zap.Logger
}

// New wraps an existing zap logger; nil falls back to zap.NewNop.
func New(l *zap.Logger) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	return &Sink{l: l}
}

func (s *Sink) Variant() xjournal.Variant { return Variant }

func (s *Sink) String() string { return "zap" }

// Deliver emits the rendered line at the mapped level via the Check fast
// path, with "ts" carrying the event timestamp as RFC3339Nano.
func (s *Sink) Deliver(line string, ev *xjournal.Event) error {
	ce := s.l.Check(mapSeverity(ev.Severity()), line)
	if ce == nil {
		return nil
	}
	ce.Write(zap.String("ts", ev.Time().UTC().Format(time.RFC3339Nano)))
	return nil
}

// Close syncs the underlying logger so buffered output reaches its
// destination. Router.Close calls this through the template appender.
func (s *Sink) Close() error {
	return s.l.Sync()
}

func mapSeverity(sev xjournal.Severity) zapcore.Level {
	switch sev {
	case xjournal.SeverityError:
		return zapcore.ErrorLevel
	case xjournal.SeverityWarn:
		return zapcore.WarnLevel
	case xjournal.SeverityInfo:
		return zapcore.InfoLevel
	case xjournal.SeverityTrace:
		// zap has no trace level; debug is the closest.
		return zapcore.DebugLevel
	default:
		return zapcore.ErrorLevel
	}
}
