package xjournal

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Console is the default output channel: each rendered line goes to one
// io.Writer, optionally colored by severity. A router with an empty registry
// registers a plain console appender the moment an event is admitted, so no
// admitted event is ever dropped silently.
type Console struct {
	w      io.Writer
	colors bool
}

// ConsoleOptions configures a console sink.
type ConsoleOptions struct {
	// Colors turns on per-severity line coloring. The color library strips
	// escape codes on non-terminal writers unless forced.
	Colors bool
}

// severityColors follows the conventional terminal palette for log levels.
var severityColors = map[Severity]*color.Color{
	SeverityError: color.New(color.FgRed, color.Bold),
	SeverityWarn:  color.New(color.FgYellow),
	SeverityInfo:  color.New(color.FgGreen),
	SeverityTrace: color.New(color.FgCyan),
}

// NewConsole returns a console sink writing to w; nil means os.Stdout.
func NewConsole(w io.Writer, opts ConsoleOptions) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w, colors: opts.Colors}
}

func (c *Console) Variant() Variant { return VariantConsole }

func (c *Console) String() string { return "console" }

func (c *Console) Deliver(line string, ev *Event) error {
	if c.colors {
		if col, ok := severityColors[ev.Severity()]; ok {
			_, err := col.Fprintln(c.w, line)
			return err
		}
	}
	_, err := io.WriteString(c.w, line+"\n")
	return err
}

// NewConsoleAppender wraps a console sink in the template appender. Used by
// hosts directly and by the router's empty-registry fallback.
func NewConsoleAppender(w io.Writer, opts ConsoleOptions, scope *Scope) (Appender, error) {
	return NewAppender(NewConsole(w, opts), scope)
}
