package zerolog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xjournal"
)

// Config is an explicit, code-first configuration. No envs, no hidden init,
// one call to Use.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	Console           bool      // pretty console output instead of JSON
	ConsoleTimeFormat string    // only used if Console; default time.RFC3339Nano
}

// Use builds a zerolog-backed appender from cfg against scope (nil means the
// default scope). The backend is left wide open so every delivered line is
// written; the journal's admission threshold is the only filter.
func Use(cfg Config, scope *xjournal.Scope) (xjournal.Appender, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}
	zl = zl.Level(zerolog.TraceLevel)
	return xjournal.NewAppender(New(zl), scope)
}
