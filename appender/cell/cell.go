// Package cell delivers each rendered line into one designated cell of a
// host document and repaints the cell's background by severity. The host
// supplies the cell through the Surface interface; this package never talks
// to a concrete document API itself.
package cell

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/trickstertwo/xjournal"
)

// Variant tags cell appenders in the router registry.
const Variant = xjournal.Variant("cell")

// Surface is the single host-document cell the sink writes into. Both calls
// replace the previous state: a cell shows exactly one line at a time.
type Surface interface {
	SetValue(value string) error
	SetBackground(hex string) error
}

// hexColor matches six-hex-digit color codes, with or without a leading '#'.
var hexColor = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// DefaultColors is the stock palette: red-tinted errors, amber warnings,
// white otherwise.
var DefaultColors = map[xjournal.Severity]string{
	xjournal.SeverityError: "#f4cccc",
	xjournal.SeverityWarn:  "#fce5cd",
	xjournal.SeverityInfo:  "#ffffff",
	xjournal.SeverityTrace: "#ffffff",
}

// Options overrides per-severity backgrounds. Severities absent from Colors
// keep their DefaultColors entry.
type Options struct {
	Colors map[xjournal.Severity]string
}

// Sink writes rendered lines into one host cell.
type Sink struct {
	surface Surface
	colors  map[xjournal.Severity]string
}

// New builds a cell sink over surface. Color overrides are validated
// strictly: a malformed code is a construction error, not a surprise during
// routing.
func New(surface Surface, opts Options) (*Sink, error) {
	if surface == nil {
		return nil, &xjournal.ValidationError{Reason: "cell surface must not be nil"}
	}
	colors := make(map[xjournal.Severity]string, len(DefaultColors))
	for sev, hex := range DefaultColors {
		colors[sev] = hex
	}
	for sev, hex := range opts.Colors {
		if !sev.Valid() {
			return nil, &xjournal.ConfigError{Reason: fmt.Sprintf("cell color for unknown severity %d", int(sev))}
		}
		if !hexColor.MatchString(hex) {
			return nil, &xjournal.ConfigError{Reason: fmt.Sprintf("cell color %q is not a six-hex-digit code", hex)}
		}
		colors[sev] = normalizeHex(hex)
	}
	return &Sink{surface: surface, colors: colors}, nil
}

// normalizeHex lower-cases the code and guarantees the leading '#'.
func normalizeHex(hex string) string {
	hex = strings.ToLower(hex)
	if strings.HasPrefix(hex, "#") {
		return hex
	}
	return "#" + hex
}

func (s *Sink) Variant() xjournal.Variant { return Variant }

func (s *Sink) String() string { return "cell" }

// Deliver writes the line first, then repaints. A failed repaint leaves the
// line in place; the value is the payload, the color is decoration.
func (s *Sink) Deliver(line string, ev *xjournal.Event) error {
	if err := s.surface.SetValue(line); err != nil {
		return err
	}
	return s.surface.SetBackground(s.colors[ev.Severity()])
}

// NewAppender wraps a cell sink in the template appender against scope.
func NewAppender(surface Surface, opts Options, scope *xjournal.Scope) (xjournal.Appender, error) {
	s, err := New(surface, opts)
	if err != nil {
		return nil, err
	}
	return xjournal.NewAppender(s, scope)
}
