package slogappender

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xjournal"
)

// NewJSON builds a JSON-handler slog appender writing to w (os.Stdout when
// nil) against scope. The handler is open down to LevelTrace so the
// journal's admission threshold stays the only filter.
func NewJSON(w io.Writer, scope *xjournal.Scope) (xjournal.Appender, error) {
	if w == nil {
		w = os.Stdout
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelTrace})
	return xjournal.NewAppender(New(slog.New(h)), scope)
}

// NewText builds a text-handler slog appender writing to w (os.Stdout when
// nil) against scope.
func NewText(w io.Writer, scope *xjournal.Scope) (xjournal.Appender, error) {
	if w == nil {
		w = os.Stdout
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: LevelTrace})
	return xjournal.NewAppender(New(slog.New(h)), scope)
}
