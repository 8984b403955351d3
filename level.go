package xjournal

import (
	"fmt"
	"strings"
)

// Level is a router's admission threshold: LevelOff plus one level per
// severity. The ordering is shared with Severity, so admission is a single
// numeric comparison.
type Level int

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelTrace
)

var levelNames = map[Level]string{
	LevelOff:   "OFF",
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelTrace: "TRACE",
}

var levelValues = map[string]Level{
	"OFF":     LevelOff,
	"ERROR":   LevelError,
	"WARN":    LevelWarn,
	"WARNING": LevelWarn,
	"INFO":    LevelInfo,
	"TRACE":   LevelTrace,
}

// String returns the canonical upper-case name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Valid reports whether l is OFF or one of the severity-backed levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// admits reports whether an event of severity s passes this threshold.
// OFF admits nothing; any other level admits its own severity and louder.
func (l Level) admits(s Severity) bool {
	return l != LevelOff && l >= Level(s)
}

// ParseLevel resolves a case-insensitive level name ("off", "INFO",
// "warning", ...).
func ParseLevel(name string) (Level, error) {
	if l, ok := levelValues[strings.ToUpper(name)]; ok {
		return l, nil
	}
	return 0, &ConfigError{Reason: fmt.Sprintf("unknown level %q", name)}
}
