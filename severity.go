package xjournal

import (
	"fmt"
	"strings"
)

// Severity classifies a single event. The numerically smallest severity is
// the loudest: it survives every enabled level. The zero value is invalid so
// that forgotten severities fail validation instead of routing silently.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarn
	SeverityInfo
	SeverityTrace
)

var severityNames = map[Severity]string{
	SeverityError: "ERROR",
	SeverityWarn:  "WARN",
	SeverityInfo:  "INFO",
	SeverityTrace: "TRACE",
}

var severityValues = map[string]Severity{
	"ERROR":   SeverityError,
	"WARN":    SeverityWarn,
	"WARNING": SeverityWarn,
	"INFO":    SeverityInfo,
	"TRACE":   SeverityTrace,
}

// String returns the canonical upper-case name used by layouts.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

// Level returns the quietest level that still admits s.
func (s Severity) Level() Level {
	return Level(s)
}

// Critical reports whether events of this severity are recorded in the
// router's critical history and counted.
func (s Severity) Critical() bool {
	return s == SeverityError || s == SeverityWarn
}

// ParseSeverity resolves a case-insensitive severity name ("error", "WARN",
// "warning", ...).
func ParseSeverity(name string) (Severity, error) {
	if s, ok := severityValues[strings.ToUpper(name)]; ok {
		return s, nil
	}
	return 0, &ConfigError{Reason: fmt.Sprintf("unknown severity %q", name)}
}
